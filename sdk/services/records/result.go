// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aspace-tools/caption-linker/sdk/config"
)

// Result is the decoded outcome of a write call: either Success or Failure.
type Result interface {
	isResult()
}

// Success means the API answered with a "status" and the record's URI.
type Success struct {
	URI string
}

// Failure means the API rejected the call (an "error" body or a non-2xx
// answer). It is a normal outcome, not a Go error.
type Failure struct {
	StatusCode int
	Message    string
}

func (Success) isResult() {}
func (Failure) isResult() {}

// decodeResult classifies the answer of CoreHTTP.Do. Only transport faults
// and bodies that are neither success nor failure come back as error.
func decodeResult(body []byte, status int, err error) (Result, error) {
	if err != nil {
		if f, ok := failureFromError(err); ok {
			return f, nil
		}
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("invalid response body (status %d): %w", status, err)
	}
	if e, ok := m["error"]; ok {
		return Failure{StatusCode: status, Message: errorMessage(e)}, nil
	}
	if _, ok := m["status"]; ok {
		uri, _ := m["uri"].(string)
		if uri == "" {
			return nil, fmt.Errorf("response has status but no uri (status %d)", status)
		}
		return Success{URI: uri}, nil
	}
	return nil, fmt.Errorf("response has neither status nor error (status %d)", status)
}

// failureFromError turns an HTTP error answer into a Failure.
func failureFromError(err error) (Failure, bool) {
	var httpErr *config.HTTPError
	if !errors.As(err, &httpErr) {
		return Failure{}, false
	}
	var m map[string]any
	if json.Unmarshal(httpErr.Body, &m) == nil {
		if e, ok := m["error"]; ok {
			return Failure{StatusCode: httpErr.StatusCode, Message: errorMessage(e)}, true
		}
	}
	return Failure{StatusCode: httpErr.StatusCode, Message: httpErr.Error()}, true
}

// errorMessage renders the "error" member, which is a string for most
// failures and an object of field -> messages for validation errors.
func errorMessage(e any) string {
	if s, ok := e.(string); ok {
		return s
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprint(e)
	}
	return string(b)
}
