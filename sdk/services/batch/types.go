// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"

	"github.com/aspace-tools/caption-linker/sdk/services/records"
)

// Input columns shared by both units.
const (
	ColParentURI   = "parent_uri"
	ColResourceURI = "resource_uri"
	ColRepoURI     = "repo_uri"
)

// Per-unit column prefixes; the full name is prefix + "-" + unit.
const (
	ColIdentifierPrefix = "DigitalObjectIdentifier"
	ColTitlePrefix      = "DigitalObjectTitle"
	ColFileURIPrefix    = "DigitalObjectFileVersionFileURI"
)

func UnitColumn(prefix string, unit records.Unit) string {
	return prefix + "-" + string(unit)
}

// RequiredColumns is the header every input file must carry.
func RequiredColumns() []string {
	cols := []string{ColParentURI, ColResourceURI, ColRepoURI}
	for _, u := range records.Units {
		cols = append(cols,
			UnitColumn(ColIdentifierPrefix, u),
			UnitColumn(ColTitlePrefix, u),
			UnitColumn(ColFileURIPrefix, u))
	}
	return cols
}

// Row is one CSV line keyed by header name.
type Row map[string]string

func (r Row) Get(col string) string {
	return r[col]
}

type RowStatus string

const (
	RowDone    RowStatus = "done"
	RowSkipped RowStatus = "skipped"
	RowFailed  RowStatus = "failed"
)

// RowResult is the terminal state of one row. Done means both units were
// attempted; their own outcome is in Units.
type RowResult struct {
	Line      int                  `json:"line"`
	ParentURI string               `json:"parent_uri"`
	Status    RowStatus            `json:"status"`
	Reason    string               `json:"reason,omitempty"`
	Units     []records.UnitResult `json:"units,omitempty"`
}

type Summary struct {
	RunID        string      `json:"run_id,omitempty"`
	Total        int         `json:"total"`
	Processed    int         `json:"processed"`
	Done         int         `json:"done"`
	Skipped      int         `json:"skipped"`
	Failed       int         `json:"failed"`
	UnitsCreated int         `json:"units_created"`
	UnitsFailed  int         `json:"units_failed"`
	Cancelled    bool        `json:"cancelled,omitempty"`
	Rows         []RowResult `json:"rows"`
}

// UnitCreator runs the dependent-creation sequence for one unit.
// *records.RecordsService satisfies it.
type UnitCreator interface {
	CreateUnit(ctx context.Context, req records.UnitRequest) (records.UnitResult, error)
}

// ProgressReporter receives one Tick per processed row.
type ProgressReporter interface {
	Tick()
	Done()
}

type ProcessRequest struct {
	Rows []Row
	// Total is the expected row count shown by the progress reporter; it
	// comes from the input's line count, not from how many rows validate.
	Total    int
	Progress ProgressReporter
	RunID    string
}
