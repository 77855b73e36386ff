// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package aspacetest provides an in-memory ArchivesSpace stand-in for tests.
// It implements the handful of endpoints the linker uses and records every
// request it receives.
package aspacetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const Session = "test-session-token"

// Call is one request seen by the server.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// Server is a fake ArchivesSpace backend. The Fail* hooks, when set, return
// a non-nil "error" payload to reject the request. BlankArchivalObject,
// when it returns true, answers 200 with an empty JSON object.
type Server struct {
	*httptest.Server

	Username string
	Password string

	FailArchivalObject  func(body map[string]any) any
	BlankArchivalObject func(body map[string]any) bool
	FailDigitalObject   func(body map[string]any) any
	FailSave            func(uri string, body map[string]any) any

	mu      sync.Mutex
	calls   []Call
	records map[string]map[string]any
	nextID  int
	doIDs   map[string]bool
}

// New starts a server and registers its shutdown with t.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		Username: "admin",
		Password: "admin",
		records:  map[string]map[string]any{},
		doIDs:    map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/{user}/login", s.login)
	mux.HandleFunc("POST /repositories/{repo}/archival_objects", s.createArchivalObject)
	mux.HandleFunc("POST /repositories/{repo}/digital_objects", s.createDigitalObject)
	mux.HandleFunc("GET /repositories/{repo}/archival_objects/{id}", s.getRecord)
	mux.HandleFunc("POST /repositories/{repo}/archival_objects/{id}", s.saveRecord)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// Calls returns a copy of every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CountCalls counts requests by method and path pattern suffix, e.g.
// ("POST", "/digital_objects").
func (s *Server) CountCalls(method, suffix string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && strings.HasSuffix(c.Path, suffix) {
			n++
		}
	}
	return n
}

// Record returns a stored record by URI.
func (s *Server) Record(uri string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[uri]
	return r, ok
}

// Instances returns the instances list of a stored archival object.
func (s *Server) Instances(uri string) []any {
	r, ok := s.Record(uri)
	if !ok {
		return nil
	}
	inst, _ := r["instances"].([]any)
	return inst
}

// Put seeds a record, for example a pre-existing archival object.
func (s *Server) Put(uri string, record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[uri] = record
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			b, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			if len(b) > 0 {
				_ = json.Unmarshal(b, &body)
			}
			r.Body = io.NopCloser(bytes.NewReader(b))
		}
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("user") != s.Username || r.URL.Query().Get("password") != s.Password {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Login failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": Session,
		"user":    map[string]any{"username": s.Username},
	})
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-ArchivesSpace-Session") != Session {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Access denied"})
		return false
	}
	return true
}

func (s *Server) createArchivalObject(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	body := decode(r)
	if s.FailArchivalObject != nil {
		if msg := s.FailArchivalObject(body); msg != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg})
			return
		}
	}
	if s.BlankArchivalObject != nil && s.BlankArchivalObject(body) {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if _, ok := body["instances"]; !ok {
		body["instances"] = []any{}
	}
	s.create(w, "/repositories/"+r.PathValue("repo")+"/archival_objects", body)
}

func (s *Server) createDigitalObject(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	body := decode(r)
	if s.FailDigitalObject != nil {
		if msg := s.FailDigitalObject(body); msg != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg})
			return
		}
	}
	id, _ := body["digital_object_id"].(string)
	s.mu.Lock()
	dup := s.doIDs[id]
	s.doIDs[id] = true
	s.mu.Unlock()
	if dup {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"digital_object_id": []string{"Must be unique"}},
		})
		return
	}
	s.create(w, "/repositories/"+r.PathValue("repo")+"/digital_objects", body)
}

func (s *Server) create(w http.ResponseWriter, collection string, body map[string]any) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	uri := fmt.Sprintf("%s/%d", collection, id)
	body["uri"] = uri
	body["lock_version"] = float64(0)
	s.records[uri] = body
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "Created",
		"id":           id,
		"lock_version": 0,
		"uri":          uri,
		"warnings":     []any{},
	})
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	rec, ok := s.Record(r.URL.Path)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Record not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) saveRecord(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	uri := r.URL.Path
	if _, ok := s.Record(uri); !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Record not found"})
		return
	}
	body := decode(r)
	if s.FailSave != nil {
		if msg := s.FailSave(uri, body); msg != nil {
			writeJSON(w, http.StatusConflict, map[string]any{"error": msg})
			return
		}
	}
	s.Put(uri, body)
	writeJSON(w, http.StatusOK, map[string]any{"status": "Updated", "uri": uri})
}

func decode(r *http.Request) map[string]any {
	m := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&m)
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
