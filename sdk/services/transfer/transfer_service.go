// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aspace-tools/caption-linker/sdk/config"
	"github.com/aspace-tools/caption-linker/sdk/logging"
)

// TransferService moves the run's files: it reads the input CSV and writes
// the report, each either on the local filesystem or in S3.
type TransferService struct {
	s3conf config.S3Config
	s3     *config.S3Client
	logger *slog.Logger
}

func NewTransferService(_ context.Context, conf config.Config, logger *slog.Logger) *TransferService {
	return &TransferService{s3conf: conf.S3, logger: logging.OrDiscard(logger)}
}

// s3Client is built on first use so local-only runs never load AWS config.
func (s *TransferService) s3Client(ctx context.Context) (*config.S3Client, error) {
	if s.s3 != nil {
		return s.s3, nil
	}
	c, err := config.NewS3Client(ctx, s.s3conf)
	if err != nil {
		return nil, fmt.Errorf("S3 init failed: %w", err)
	}
	s.s3 = c
	return c, nil
}
