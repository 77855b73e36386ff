// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/aspace-tools/caption-linker/sdk/services/auth"
	"github.com/aspace-tools/caption-linker/sdk/utils"
)

// pathPrompter implements transfer.PathPrompter on the console.
type pathPrompter struct {
	p       *utils.Prompter
	out     io.Writer
	initial string
	calls   int
}

func (a *pathPrompter) PromptPath() (string, error) {
	if a.calls > 0 || a.initial != "" {
		fmt.Fprintf(a.out, "CSV not found. Please try again. Enter %q to exit\n", utils.QuitToken)
	}
	a.calls++
	return a.p.Ask("Please enter path to CSV: ")
}

// credentialsPrompter implements auth.CredentialsPrompter. The API url stays
// the one the operator confirmed; only the account is asked again.
type credentialsPrompter struct {
	p       *utils.Prompter
	out     io.Writer
	baseURL string
}

func (a *credentialsPrompter) PromptCredentials() (auth.Credentials, error) {
	fmt.Fprintln(a.out, "Login failed! Check credentials and try again.")
	user, err := a.p.Ask("Please enter your username: ")
	if err != nil {
		return auth.Credentials{}, err
	}
	pass, err := a.p.Ask("Please enter your password: ")
	if err != nil {
		return auth.Credentials{}, err
	}
	return auth.Credentials{BaseURL: a.baseURL, Username: user, Password: pass}, nil
}
