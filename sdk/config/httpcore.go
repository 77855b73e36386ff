// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SessionHeader carries the token obtained from the login endpoint.
const SessionHeader = "X-ArchivesSpace-Session"

type CoreHTTP interface {
	BuildURL(path string, params map[string]string) string
	Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error)
}

// HTTPError is returned by Do for any non-2xx response. Body is kept so
// callers can decode the API's own error payload.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	var m map[string]any
	if json.Unmarshal(e.Body, &m) == nil {
		switch msg := m["error"].(type) {
		case string:
			if msg != "" {
				return fmt.Sprintf("archivesspace responded with: %s - %s", e.Status, msg)
			}
		case nil:
		default:
			if b, err := json.Marshal(msg); err == nil {
				return fmt.Sprintf("archivesspace responded with: %s - %s", e.Status, b)
			}
		}
	}
	return fmt.Sprintf("archivesspace responded with: %s", e.Status)
}

type httpCore struct {
	httpClient *http.Client
	coreConfig CoreConfig
}

func NewHTTPCore(httpClient *http.Client, coreConfig CoreConfig) CoreHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	coreConfig.BaseURL = strings.TrimRight(coreConfig.BaseURL, "/")
	return &httpCore{httpClient: httpClient, coreConfig: coreConfig}
}

// BuildURL joins the base URL with a record path such as
// "/repositories/2/archival_objects". Params are query-escaped; empty values
// are dropped.
func (httpCore *httpCore) BuildURL(path string, params map[string]string) string {
	base := httpCore.coreConfig.BaseURL
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base += path

	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) > 0 {
		base += "?" + q.Encode()
	}
	return base
}

func (httpCore *httpCore) Do(ctx context.Context, method, url string, data []byte) ([]byte, int, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tok := httpCore.coreConfig.Session; tok != "" {
		req.Header.Set(SessionHeader, tok)
	}

	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, rerr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return b, resp.StatusCode, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: b}
	}
	return b, resp.StatusCode, rerr
}
