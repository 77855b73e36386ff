// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aspace-tools/caption-linker/sdk/logging"
)

// CreateUnit runs the dependent sequence for one unit:
//
//  1. create the archival object under ParentURI
//  2. create the digital object
//  3. link them through an instance on the archival object
//
// A rejected step is logged and ends the unit; nothing created earlier is
// rolled back. Transport and decoding faults also end the unit: they are
// returned as an error, with Step and Message set on the result as well.
func (s *RecordsService) CreateUnit(ctx context.Context, req UnitRequest) (UnitResult, error) {
	log := logging.ForRow(s.logger, req.ParentURI).With("unit", string(req.Unit))
	out := UnitResult{Unit: req.Unit}

	ao := NewArchivalObject(string(req.Unit), req.ParentURI, req.ResourceURI, req.RepoURI)
	res, err := s.CreateArchivalObject(ctx, req.RepoURI, ao)
	if err != nil {
		return fault(out, StepArchivalObject, fmt.Errorf("%s archival object: %w", req.Unit, err))
	}
	switch r := res.(type) {
	case Failure:
		return s.reject(log, out, StepArchivalObject, r), nil
	case Success:
		out.ArchivalObjectURI = r.URI
	}

	do := NewDigitalObject(req.DigitalObjectID, req.DigitalObjectTitle, req.FileURI)
	res, err = s.CreateDigitalObject(ctx, req.RepoURI, do)
	if err != nil {
		return fault(out, StepDigitalObject, fmt.Errorf("%s digital object: %w", req.Unit, err))
	}
	switch r := res.(type) {
	case Failure:
		return s.reject(log, out, StepDigitalObject, r), nil
	case Success:
		out.DigitalObjectURI = r.URI
	}

	res, err = s.LinkDigitalObject(ctx, out.ArchivalObjectURI, out.DigitalObjectURI)
	if err != nil {
		return fault(out, StepLink, fmt.Errorf("%s link: %w", req.Unit, err))
	}
	if r, ok := res.(Failure); ok {
		return s.reject(log, out, StepLink, r), nil
	}

	out.Created = true
	log.Debug("unit created",
		"archival_object", out.ArchivalObjectURI,
		"digital_object", out.DigitalObjectURI)
	return out, nil
}

func (s *RecordsService) reject(log *slog.Logger, out UnitResult, step Step, f Failure) UnitResult {
	out.Step = step
	out.Message = f.Message
	log.Warn("unit failed", "step", string(step), "status", f.StatusCode, "error", f.Message)
	return out
}

func fault(out UnitResult, step Step, err error) (UnitResult, error) {
	out.Step = step
	out.Message = err.Error()
	return out, err
}
