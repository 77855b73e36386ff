// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"github.com/aspace-tools/caption-linker/sdk/services/batch"
)

// -------- Input --------

type InputRequest struct {
	Location string   // local path or s3://bucket/key
	Required []string // header columns that must be present
}

// PathPrompter asks for another input location after a missing file.
type PathPrompter interface {
	PromptPath() (string, error)
}

type InputRetryRequest struct {
	InputRequest
	MaxAttempts int
	Prompter    PathPrompter
}

type Input struct {
	Location string
	Header   []string
	Rows     []batch.Row
	// Lines counts physical lines, header included.
	Lines int
}

// Total is the row count used for progress: every line but the header.
func (in *Input) Total() int {
	return max(in.Lines-1, 0)
}

// -------- Report --------

type ReportRequest struct {
	Location string // local path or s3://bucket/key
	Summary  batch.Summary
}
