// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aspace-tools/caption-linker/sdk/logging"
)

type BatchService struct {
	units  UnitCreator
	logger *slog.Logger
}

func NewBatchService(_ context.Context, units UnitCreator, logger *slog.Logger) (*BatchService, error) {
	if units == nil {
		return nil, errors.New("unit creator is required")
	}
	return &BatchService{units: units, logger: logging.OrDiscard(logger)}, nil
}
