// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aspace-tools/caption-linker/sdk/config"
	"github.com/aspace-tools/caption-linker/sdk/logging"
)

type RecordsService struct {
	http   config.CoreHTTP
	logger *slog.Logger
}

func NewRecordsService(_ context.Context, conf config.Config, logger *slog.Logger) (*RecordsService, error) {
	if conf.Core.BaseURL == "" {
		return nil, errors.New("invalid core config")
	}
	if conf.Core.Session == "" {
		return nil, errors.New("not authenticated: missing session")
	}
	return &RecordsService{
		http:   config.NewHTTPCore(nil, conf.Core),
		logger: logging.OrDiscard(logger),
	}, nil
}
