// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ParsedPath is a location given on the command line or in the config:
// either a local file ("file" scheme) or an object ("s3://bucket/key").
type ParsedPath struct {
	Scheme   string
	Host     string // bucket for s3
	Path     string // key for s3 (no leading slash), file path otherwise
	Filename string
}

func (p ParsedPath) IsRemote() bool {
	return p.Scheme == "s3"
}

func (p ParsedPath) String() string {
	if p.IsRemote() {
		return "s3://" + p.Host + "/" + p.Path
	}
	return p.Path
}

// ParsePath accepts "s3://bucket/key" or a plain filesystem path.
func ParsePath(raw string) (ParsedPath, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedPath{}, fmt.Errorf("empty path")
	}
	if !strings.HasPrefix(strings.ToLower(raw), "s3://") {
		return ParsedPath{Scheme: "file", Path: raw, Filename: path.Base(strings.ReplaceAll(raw, `\`, "/"))}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ParsedPath{}, fmt.Errorf("invalid s3 url %q: %w", raw, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return ParsedPath{}, fmt.Errorf("s3 url %q must be s3://bucket/key", raw)
	}
	return ParsedPath{Scheme: "s3", Host: u.Host, Path: key, Filename: path.Base(key)}, nil
}
