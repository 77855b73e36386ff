// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/aspace-tools/caption-linker/sdk/services/batch"
	"github.com/aspace-tools/caption-linker/sdk/utils"
)

var (
	ErrInputNotFound = errors.New("input not found")
	ErrInputAborted  = errors.New("input selection aborted")
)

// OpenInput reads and parses the CSV at req.Location.
func (s *TransferService) OpenInput(ctx context.Context, req InputRequest) (*Input, error) {
	if strings.TrimSpace(req.Location) == "" {
		return nil, fmt.Errorf("%w: no path given", ErrInputNotFound)
	}
	pp, err := utils.ParsePath(req.Location)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch pp.Scheme {
	case "s3":
		c, err := s.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		data, err = c.ReadObject(ctx, pp.Host, pp.Path)
		if err != nil {
			return nil, err
		}
	default:
		data, err = os.ReadFile(pp.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrInputNotFound, pp.Path)
			}
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	in, err := ParseCSV(data, req.Required)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pp, err)
	}
	in.Location = pp.String()
	s.logger.Debug("input opened", "location", in.Location, "file", pp.Filename, "rows", len(in.Rows), "lines", in.Lines)
	return in, nil
}

// OpenInputWithRetry re-prompts for a path while the input file is missing,
// up to req.MaxAttempts. Answering QuitToken stops with ErrInputAborted.
// Other errors (unreadable file, bad header) are returned at once.
func (s *TransferService) OpenInputWithRetry(ctx context.Context, req InputRetryRequest) (*Input, error) {
	maxAttempts := max(req.MaxAttempts, 1)
	location := req.Location

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 || location == "" {
			if req.Prompter == nil {
				break
			}
			next, err := req.Prompter.PromptPath()
			if err != nil {
				return nil, fmt.Errorf("reading input path: %w", err)
			}
			if next == utils.QuitToken {
				return nil, ErrInputAborted
			}
			location = next
		}

		in, err := s.OpenInput(ctx, InputRequest{Location: location, Required: req.Required})
		if err == nil {
			return in, nil
		}
		if !errors.Is(err, ErrInputNotFound) {
			return nil, err
		}
		lastErr = err
		s.logger.Debug("input not found, trying again", "attempt", attempt, "location", location)
	}
	if lastErr == nil {
		lastErr = errors.New("no input path given")
	}
	return nil, lastErr
}

// ParseCSV reads a header line and the rows below it. Short rows are padded
// with empty values; blank lines are skipped but still counted in Lines.
func ParseCSV(data []byte, required []string) (*Input, error) {
	data = stripBOM(data)
	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var missing []string
	for _, col := range required {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}

	var rows []batch.Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		row := make(batch.Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Input{Header: header, Rows: rows, Lines: countLines(data)}, nil
}

// countLines counts lines the way a text reader would: a trailing newline
// does not start a new line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
