// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// CreateArchivalObject performs POST {base}{repo}/archival_objects
func (s *RecordsService) CreateArchivalObject(ctx context.Context, repoURI string, ao ArchivalObject) (Result, error) {
	if repoURI == "" {
		return nil, errors.New("repository uri is required")
	}
	return s.post(ctx, repoURI+"/archival_objects", ao)
}

// CreateDigitalObject performs POST {base}{repo}/digital_objects
func (s *RecordsService) CreateDigitalObject(ctx context.Context, repoURI string, do DigitalObject) (Result, error) {
	if repoURI == "" {
		return nil, errors.New("repository uri is required")
	}
	return s.post(ctx, repoURI+"/digital_objects", do)
}

func (s *RecordsService) post(ctx context.Context, path string, v any) (Result, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	url := s.http.BuildURL(path, nil)
	return decodeResult(s.http.Do(ctx, http.MethodPost, url, body))
}
