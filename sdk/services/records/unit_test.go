// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package records_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspace-tools/caption-linker/internal/aspacetest"
	"github.com/aspace-tools/caption-linker/sdk/config"
	"github.com/aspace-tools/caption-linker/sdk/logging"
	"github.com/aspace-tools/caption-linker/sdk/services/records"
)

const (
	repoURI     = "/repositories/2"
	resourceURI = "/repositories/2/resources/7"
	parentURI   = "/repositories/2/archival_objects/100"
)

func newService(t *testing.T, srv *aspacetest.Server) (*records.RecordsService, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	cfg := config.Config{Core: config.CoreConfig{BaseURL: srv.URL}}.WithSession(aspacetest.Session)
	svc, err := records.NewRecordsService(context.Background(), cfg, logging.New(&logs, "debug", "text"))
	require.NoError(t, err)
	return svc, &logs
}

func captionRequest() records.UnitRequest {
	return records.UnitRequest{
		Unit:               records.Caption,
		ParentURI:          parentURI,
		ResourceURI:        resourceURI,
		RepoURI:            repoURI,
		DigitalObjectID:    "cap-001",
		DigitalObjectTitle: "Interview 1 captions",
		FileURI:            "https://media.example.org/cap-001.vtt",
	}
}

func TestNewRecordsServiceRequiresSession(t *testing.T) {
	_, err := records.NewRecordsService(context.Background(), config.Config{
		Core: config.CoreConfig{BaseURL: "http://localhost:8089"},
	}, nil)
	require.Error(t, err)
}

func TestCreateUnitSuccess(t *testing.T) {
	srv := aspacetest.New(t)
	svc, _ := newService(t, srv)

	res, err := svc.CreateUnit(context.Background(), captionRequest())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Empty(t, res.Step)

	assert.Equal(t, 1, srv.CountCalls("POST", "/archival_objects"))
	assert.Equal(t, 1, srv.CountCalls("POST", "/digital_objects"))
	assert.Equal(t, 1, srv.CountCalls("GET", res.ArchivalObjectURI))
	assert.Equal(t, 1, srv.CountCalls("POST", res.ArchivalObjectURI))

	ao, ok := srv.Record(res.ArchivalObjectURI)
	require.True(t, ok)
	assert.Equal(t, "Caption", ao["title"])
	assert.Equal(t, "file", ao["level"])
	assert.Equal(t, true, ao["publish"])
	assert.Equal(t, parentURI, ao["parent"].(map[string]any)["ref"])

	inst := srv.Instances(res.ArchivalObjectURI)
	require.Len(t, inst, 1)
	entry := inst[0].(map[string]any)
	assert.Equal(t, "digital_object", entry["instance_type"])
	assert.Equal(t, res.DigitalObjectURI, entry["digital_object"].(map[string]any)["ref"])

	do, ok := srv.Record(res.DigitalObjectURI)
	require.True(t, ok)
	assert.Equal(t, false, do["publish"])
	fv := do["file_versions"].([]any)[0].(map[string]any)
	assert.Equal(t, false, fv["publish"])
	assert.Equal(t, "https://media.example.org/cap-001.vtt", fv["file_uri"])
}

func TestCreateUnitArchivalObjectRejected(t *testing.T) {
	srv := aspacetest.New(t)
	srv.FailArchivalObject = func(map[string]any) any {
		return map[string]any{"parent": []string{"Must be in the same resource"}}
	}
	svc, logs := newService(t, srv)

	res, err := svc.CreateUnit(context.Background(), captionRequest())
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, records.StepArchivalObject, res.Step)
	assert.Contains(t, res.Message, "Must be in the same resource")

	assert.Zero(t, srv.CountCalls("POST", "/digital_objects"))
	assert.Contains(t, logs.String(), "parent_uri="+parentURI)
}

func TestCreateUnitDigitalObjectRejected(t *testing.T) {
	srv := aspacetest.New(t)
	srv.FailDigitalObject = func(map[string]any) any { return "Digital object identifier must be unique" }
	svc, _ := newService(t, srv)

	res, err := svc.CreateUnit(context.Background(), captionRequest())
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, records.StepDigitalObject, res.Step)
	require.NotEmpty(t, res.ArchivalObjectURI)

	// no link attempt: the orphaned archival object keeps an empty instances list
	assert.Zero(t, srv.CountCalls("GET", res.ArchivalObjectURI))
	assert.Zero(t, srv.CountCalls("POST", res.ArchivalObjectURI))
	assert.Empty(t, srv.Instances(res.ArchivalObjectURI))
}

func TestCreateUnitLinkSaveRejected(t *testing.T) {
	srv := aspacetest.New(t)
	srv.FailSave = func(string, map[string]any) any {
		return "The record you tried to update has been modified since you fetched it."
	}
	svc, _ := newService(t, srv)

	res, err := svc.CreateUnit(context.Background(), captionRequest())
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, records.StepLink, res.Step)
	assert.Empty(t, srv.Instances(res.ArchivalObjectURI))
}

func TestCreateUnitDuplicateIdentifier(t *testing.T) {
	srv := aspacetest.New(t)
	svc, _ := newService(t, srv)

	first, err := svc.CreateUnit(context.Background(), captionRequest())
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := svc.CreateUnit(context.Background(), captionRequest())
	require.NoError(t, err)
	assert.Equal(t, records.StepDigitalObject, second.Step)
	assert.Equal(t, `{"digital_object_id":["Must be unique"]}`, second.Message)
}

func TestCreateUnitTransportError(t *testing.T) {
	srv := aspacetest.New(t)
	svc, _ := newService(t, srv)
	srv.Close()

	res, err := svc.CreateUnit(context.Background(), captionRequest())
	require.Error(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, records.Caption, res.Unit)
	assert.Equal(t, records.StepArchivalObject, res.Step)
	assert.Equal(t, err.Error(), res.Message)
}

func TestCreateUnitBlankResponse(t *testing.T) {
	srv := aspacetest.New(t)
	srv.BlankArchivalObject = func(map[string]any) bool { return true }
	svc, _ := newService(t, srv)

	res, err := svc.CreateUnit(context.Background(), captionRequest())
	require.Error(t, err)
	assert.Equal(t, records.StepArchivalObject, res.Step)
	assert.Contains(t, res.Message, "neither status nor error")
	assert.Zero(t, srv.CountCalls("POST", "/digital_objects"))
}

func TestLinkDigitalObjectKeepsExistingInstances(t *testing.T) {
	srv := aspacetest.New(t)
	svc, _ := newService(t, srv)

	aoURI := "/repositories/2/archival_objects/555"
	srv.Put(aoURI, map[string]any{
		"uri":          aoURI,
		"title":        "Existing",
		"lock_version": float64(3),
		"instances": []any{
			map[string]any{"instance_type": "mixed_materials"},
		},
	})

	res, err := svc.LinkDigitalObject(context.Background(), aoURI, "/repositories/2/digital_objects/9")
	require.NoError(t, err)
	assert.Equal(t, records.Success{URI: aoURI}, res)

	inst := srv.Instances(aoURI)
	require.Len(t, inst, 2)
	rec, _ := srv.Record(aoURI)
	assert.Equal(t, float64(3), rec["lock_version"])
	assert.Equal(t, "Existing", rec["title"])
}

func TestLinkDigitalObjectMissingRecord(t *testing.T) {
	srv := aspacetest.New(t)
	svc, _ := newService(t, srv)

	res, err := svc.LinkDigitalObject(context.Background(), "/repositories/2/archival_objects/404", "/repositories/2/digital_objects/1")
	require.NoError(t, err)
	f, ok := res.(records.Failure)
	require.True(t, ok)
	assert.Equal(t, 404, f.StatusCode)
	assert.Equal(t, "Record not found", f.Message)
}
