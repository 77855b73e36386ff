// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aspace-tools/caption-linker/sdk/config"
	"github.com/aspace-tools/caption-linker/sdk/logging"
)

type AuthService struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAuthService builds the login client. The base URL is not fixed here
// because every retry may target a different one.
func NewAuthService(_ context.Context, httpClient *http.Client, logger *slog.Logger) *AuthService {
	return &AuthService{httpClient: httpClient, logger: logging.OrDiscard(logger)}
}

func (s *AuthService) core(baseURL string) config.CoreHTTP {
	return config.NewHTTPCore(s.httpClient, config.CoreConfig{BaseURL: baseURL})
}
