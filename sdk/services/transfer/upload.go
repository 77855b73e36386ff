// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/aspace-tools/caption-linker/sdk/utils"
)

// WriteReport stores the run summary as YAML at req.Location.
func (s *TransferService) WriteReport(ctx context.Context, req ReportRequest) error {
	if req.Location == "" {
		return errors.New("report location is required")
	}
	pp, err := utils.ParsePath(req.Location)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(req.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	switch pp.Scheme {
	case "s3":
		c, err := s.s3Client(ctx)
		if err != nil {
			return err
		}
		if err := c.WriteObject(ctx, pp.Host, pp.Path, "application/yaml", data); err != nil {
			return err
		}
	default:
		if err := os.WriteFile(pp.Path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	s.logger.Debug("report written", "location", pp.String())
	return nil
}
