// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package auth

// Credentials identify the account used for the whole run.
type Credentials struct {
	BaseURL  string
	Username string
	Password string
}

// Session is the authenticated result of a login.
type Session struct {
	BaseURL string
	Token   string
}

// CredentialsPrompter asks the operator for fresh credentials after a
// failed login.
type CredentialsPrompter interface {
	PromptCredentials() (Credentials, error)
}

type LoginRequest struct {
	Credentials Credentials
	// MaxAttempts bounds the number of logins tried, the first one included.
	// Values below 1 mean a single attempt.
	MaxAttempts int
	Prompter    CredentialsPrompter
}
