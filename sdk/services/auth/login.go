// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var (
	ErrLoginFailed             = errors.New("login failed")
	ErrLoginAttemptsExhausted  = errors.New("login attempts exhausted")
	errMissingLoginCredentials = errors.New("api url and username are required")
)

// Login performs POST {base}/users/{username}/login?password=...
// A response without a "session" member is ErrLoginFailed.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (Session, error) {
	if creds.BaseURL == "" || creds.Username == "" {
		return Session{}, errMissingLoginCredentials
	}

	core := s.core(creds.BaseURL)
	// BuildURL drops empty params; the password is always sent, even blank.
	endpoint := core.BuildURL("/users/"+url.PathEscape(creds.Username)+"/login", nil) +
		"?" + url.Values{"password": {creds.Password}}.Encode()

	body, status, err := core.Do(ctx, http.MethodPost, endpoint, nil)
	var m map[string]any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &m)
	}
	if tok, ok := m["session"].(string); ok && tok != "" && err == nil {
		return Session{BaseURL: creds.BaseURL, Token: tok}, nil
	}
	if err != nil && status == 0 {
		return Session{}, fmt.Errorf("login request failed: %w", err)
	}
	if msg, ok := m["error"].(string); ok && msg != "" {
		return Session{}, fmt.Errorf("%w: %s", ErrLoginFailed, msg)
	}
	return Session{}, fmt.Errorf("%w (status %d)", ErrLoginFailed, status)
}

// LoginWithRetry tries the configured credentials, then re-prompts through
// req.Prompter until a login succeeds or req.MaxAttempts is reached.
// Every failure, rejected credentials and transport errors alike, counts
// as one attempt.
func (s *AuthService) LoginWithRetry(ctx context.Context, req LoginRequest) (Session, error) {
	maxAttempts := req.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	creds := req.Credentials
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if req.Prompter == nil {
				break
			}
			next, err := req.Prompter.PromptCredentials()
			if err != nil {
				return Session{}, fmt.Errorf("reading credentials: %w", err)
			}
			creds = next
		}

		sess, err := s.Login(ctx, creds)
		if err == nil {
			s.logger.Debug("login succeeded", "api_url", creds.BaseURL, "username", creds.Username)
			return sess, nil
		}
		if ctx.Err() != nil {
			return Session{}, ctx.Err()
		}
		lastErr = err
		s.logger.Debug("login failed", "attempt", attempt, "api_url", creds.BaseURL, "username", creds.Username, "error", err)
	}
	return Session{}, fmt.Errorf("%w: %w", ErrLoginAttemptsExhausted, lastErr)
}
