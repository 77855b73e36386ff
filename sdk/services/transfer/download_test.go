// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/aspace-tools/caption-linker/sdk/config"
	"github.com/aspace-tools/caption-linker/sdk/logging"
	"github.com/aspace-tools/caption-linker/sdk/services/batch"
	"github.com/aspace-tools/caption-linker/sdk/services/transfer"
)

const header = "parent_uri,resource_uri,repo_uri," +
	"DigitalObjectIdentifier-Caption,DigitalObjectTitle-Caption,DigitalObjectFileVersionFileURI-Caption," +
	"DigitalObjectIdentifier-Transcript,DigitalObjectTitle-Transcript,DigitalObjectFileVersionFileURI-Transcript\n"

type scriptedPaths struct {
	answers []string
	asked   int
}

func (p *scriptedPaths) PromptPath() (string, error) {
	if p.asked >= len(p.answers) {
		return "", errors.New("no more answers")
	}
	a := p.answers[p.asked]
	p.asked++
	return a, nil
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTransfer() *transfer.TransferService {
	return transfer.NewTransferService(context.Background(), config.Config{}, nil)
}

func TestParseCSV(t *testing.T) {
	body := "\xEF\xBB\xBF" + header +
		"/repositories/2/archival_objects/1,/repositories/2/resources/7,/repositories/2,c1,Cap 1,https://x/c1.vtt,t1,Tr 1,https://x/t1.pdf\n" +
		"/repositories/2/archival_objects/2,/repositories/2/resources/7,/repositories/2,,Cap 2\n"

	in, err := transfer.ParseCSV([]byte(body), batch.RequiredColumns())
	require.NoError(t, err)
	require.Len(t, in.Rows, 2)
	assert.Equal(t, 3, in.Lines)
	assert.Equal(t, 2, in.Total())
	assert.Equal(t, "/repositories/2/archival_objects/1", in.Rows[0].Get("parent_uri"))
	assert.Equal(t, "Tr 1", in.Rows[0].Get("DigitalObjectTitle-Transcript"))
	// short rows are padded
	assert.Equal(t, "", in.Rows[1].Get("DigitalObjectFileVersionFileURI-Transcript"))
	assert.Len(t, batch.MissingFields(in.Rows[1]), 5)
}

func TestParseCSVTotalCountsLinesNotValidRows(t *testing.T) {
	body := header + "a,b,c,,,,,,\n\n" + "d,e,f,1,2,3,4,5,6"
	in, err := transfer.ParseCSV([]byte(body), batch.RequiredColumns())
	require.NoError(t, err)
	assert.Len(t, in.Rows, 2)
	assert.Equal(t, 4, in.Lines)
	assert.Equal(t, 3, in.Total())
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := transfer.ParseCSV([]byte("parent_uri,repo_uri\nx,y\n"), batch.RequiredColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resource_uri")
	assert.Contains(t, err.Error(), "DigitalObjectIdentifier-Caption")
}

func TestOpenInputWithRetry(t *testing.T) {
	good := writeCSV(t, header)
	paths := &scriptedPaths{answers: []string{"/does/not/exist.csv", good}}

	in, err := newTransfer().OpenInputWithRetry(context.Background(), transfer.InputRetryRequest{
		InputRequest: transfer.InputRequest{Location: "missing.csv", Required: batch.RequiredColumns()},
		MaxAttempts:  3,
		Prompter:     paths,
	})
	require.NoError(t, err)
	assert.Equal(t, good, in.Location)
	assert.Equal(t, 2, paths.asked)
	assert.Zero(t, in.Total())
}

func TestOpenInputWithRetryBounded(t *testing.T) {
	paths := &scriptedPaths{answers: []string{"nope1.csv", "nope2.csv", "nope3.csv"}}

	_, err := newTransfer().OpenInputWithRetry(context.Background(), transfer.InputRetryRequest{
		InputRequest: transfer.InputRequest{Location: "nope0.csv"},
		MaxAttempts:  2,
		Prompter:     paths,
	})
	require.ErrorIs(t, err, transfer.ErrInputNotFound)
	assert.Equal(t, 1, paths.asked)
}

func TestOpenInputWithRetryQuit(t *testing.T) {
	paths := &scriptedPaths{answers: []string{"quit"}}

	_, err := newTransfer().OpenInputWithRetry(context.Background(), transfer.InputRetryRequest{
		InputRequest: transfer.InputRequest{Location: "nope.csv"},
		MaxAttempts:  5,
		Prompter:     paths,
	})
	require.ErrorIs(t, err, transfer.ErrInputAborted)
}

func TestOpenInputBadHeaderIsNotRetried(t *testing.T) {
	bad := writeCSV(t, "foo,bar\n1,2\n")
	paths := &scriptedPaths{}

	_, err := newTransfer().OpenInputWithRetry(context.Background(), transfer.InputRetryRequest{
		InputRequest: transfer.InputRequest{Location: bad, Required: batch.RequiredColumns()},
		MaxAttempts:  3,
		Prompter:     paths,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, transfer.ErrInputNotFound)
	assert.Zero(t, paths.asked)
}

func TestWriteReportLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	sum := batch.Summary{RunID: "abc", Total: 1, Processed: 1, Done: 1, Rows: []batch.RowResult{
		{Line: 2, ParentURI: "/repositories/2/archival_objects/1", Status: batch.RowDone},
	}}

	require.NoError(t, newTransfer().WriteReport(context.Background(), transfer.ReportRequest{Location: path, Summary: sum}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "run_id: abc"))

	var back batch.Summary
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, sum.Rows[0].ParentURI, back.Rows[0].ParentURI)
}

func TestOpenInputWithRetryEmptyAnswer(t *testing.T) {
	good := writeCSV(t, header)
	paths := &scriptedPaths{answers: []string{"", good}}

	in, err := newTransfer().OpenInputWithRetry(context.Background(), transfer.InputRetryRequest{
		InputRequest: transfer.InputRequest{Required: batch.RequiredColumns()},
		MaxAttempts:  3,
		Prompter:     paths,
	})
	require.NoError(t, err)
	assert.Equal(t, good, in.Location)
	assert.Equal(t, 2, paths.asked)
}

func TestOpenInputLogsFileName(t *testing.T) {
	path := writeCSV(t, header)
	var logs bytes.Buffer
	tr := transfer.NewTransferService(context.Background(), config.Config{}, logging.New(&logs, "debug", "text"))

	_, err := tr.OpenInput(context.Background(), transfer.InputRequest{Location: path, Required: batch.RequiredColumns()})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "file=input.csv")
}
