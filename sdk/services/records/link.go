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

// GetRecord performs GET {base}{uri}. The record is returned as a generic
// map so that saving it back keeps every field the server sent.
func (s *RecordsService) GetRecord(ctx context.Context, uri string) (map[string]any, error) {
	if uri == "" {
		return nil, errors.New("record uri is required")
	}
	url := s.http.BuildURL(uri, nil)
	b, status, err := s.http.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get record failed (status %d): %w", status, err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}
	return m, nil
}

// SaveRecord performs POST {base}{uri} with the full record.
func (s *RecordsService) SaveRecord(ctx context.Context, uri string, record map[string]any) (Result, error) {
	if uri == "" {
		return nil, errors.New("record uri is required")
	}
	return s.post(ctx, uri, record)
}

// LinkDigitalObject fetches the archival object, appends a digital_object
// instance pointing at doURI and saves it back. The save answer is checked
// like any other write.
func (s *RecordsService) LinkDigitalObject(ctx context.Context, aoURI, doURI string) (Result, error) {
	record, err := s.GetRecord(ctx, aoURI)
	if err != nil {
		if f, ok := failureFromError(err); ok {
			return f, nil
		}
		return nil, err
	}
	if err := appendInstance(record, NewDigitalObjectInstance(doURI)); err != nil {
		return nil, fmt.Errorf("%s: %w", aoURI, err)
	}
	return s.SaveRecord(ctx, aoURI, record)
}

func appendInstance(record map[string]any, inst Instance) error {
	b, err := json.Marshal(inst)
	if err != nil {
		return err
	}
	var generic map[string]any
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}

	switch existing := record["instances"].(type) {
	case nil:
		record["instances"] = []any{generic}
	case []any:
		record["instances"] = append(existing, generic)
	default:
		return fmt.Errorf("unexpected instances type %T", existing)
	}
	return nil
}
