// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"errors"

	"github.com/aspace-tools/caption-linker/sdk/logging"
	"github.com/aspace-tools/caption-linker/sdk/services/records"
)

// Process walks the rows in order. A row never stops the batch: its outcome
// is recorded and the loop moves on. Only a cancelled context ends the loop
// early.
func (s *BatchService) Process(ctx context.Context, req ProcessRequest) Summary {
	sum := Summary{RunID: req.RunID, Total: req.Total, Rows: make([]RowResult, 0, len(req.Rows))}
	if req.Progress != nil {
		defer req.Progress.Done()
	}

	for i, row := range req.Rows {
		if ctx.Err() != nil {
			sum.Cancelled = true
			s.logger.Warn("run cancelled", "remaining_rows", len(req.Rows)-i)
			break
		}

		res := s.ProcessRow(ctx, row)
		res.Line = i + 2 // header is line 1
		if req.Progress != nil {
			req.Progress.Tick()
		}

		sum.Processed++
		switch res.Status {
		case RowDone:
			sum.Done++
		case RowSkipped:
			sum.Skipped++
		case RowFailed:
			sum.Failed++
		}
		for _, u := range res.Units {
			if u.Created {
				sum.UnitsCreated++
			} else {
				sum.UnitsFailed++
			}
		}
		sum.Rows = append(sum.Rows, res)
	}
	return sum
}

// ProcessRow validates the row and, when every unit field is present,
// creates the Caption and then the Transcript unit. A failed Caption does
// not prevent the Transcript attempt. The row is Failed when either unit
// returned an error; only a cancelled context cuts the pair short.
func (s *BatchService) ProcessRow(ctx context.Context, row Row) RowResult {
	parent := row.Get(ColParentURI)
	log := logging.ForRow(s.logger, parent)
	res := RowResult{ParentURI: parent}

	if missing := MissingFields(row); len(missing) > 0 {
		log.Info("missing data", "fields", missing)
		res.Status = RowSkipped
		res.Reason = "missing data"
		return res
	}

	var errs []error
	for _, unit := range records.Units {
		ur, err := s.units.CreateUnit(ctx, unitRequest(row, unit))
		if err != nil {
			if ur.Message == "" {
				ur.Message = err.Error()
			}
			res.Units = append(res.Units, ur)
			errs = append(errs, err)
			log.Error("unit error", "unit", string(unit), "step", string(ur.Step), "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		res.Units = append(res.Units, ur)
	}

	if len(errs) > 0 {
		res.Status = RowFailed
		res.Reason = errors.Join(errs...).Error()
		log.Error("row failed", "error", res.Reason)
		return res
	}
	res.Status = RowDone
	return res
}

// MissingFields lists the empty unit fields of a row. Both units are checked
// together so that a half-valid row is never partially processed.
func MissingFields(row Row) []string {
	var missing []string
	for _, unit := range records.Units {
		for _, prefix := range []string{ColIdentifierPrefix, ColTitlePrefix, ColFileURIPrefix} {
			col := UnitColumn(prefix, unit)
			if row.Get(col) == "" {
				missing = append(missing, col)
			}
		}
	}
	return missing
}

func unitRequest(row Row, unit records.Unit) records.UnitRequest {
	return records.UnitRequest{
		Unit:               unit,
		ParentURI:          row.Get(ColParentURI),
		ResourceURI:        row.Get(ColResourceURI),
		RepoURI:            row.Get(ColRepoURI),
		DigitalObjectID:    row.Get(UnitColumn(ColIdentifierPrefix, unit)),
		DigitalObjectTitle: row.Get(UnitColumn(ColTitlePrefix, unit)),
		FileURI:            row.Get(UnitColumn(ColFileURIPrefix, unit)),
	}
}
