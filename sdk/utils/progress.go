// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"time"
)

/* ------------ single-line row progress ------------ */

// RowProgress renders "Progress: 42.00% (21 / 50 rows)" on one line.
// When the total is unknown it falls back to a spinner.
type RowProgress struct {
	out      io.Writer
	total    int
	done     int
	spinIdx  int
	lastTick time.Time
	interval time.Duration
}

var spinner = []rune{'|', '/', '-', '\\'}

func NewRowProgress(out io.Writer, total int) *RowProgress {
	return &RowProgress{out: out, total: total, interval: 100 * time.Millisecond}
}

func (p *RowProgress) Tick() {
	p.done++
	p.render(p.done == p.total)
}

func (p *RowProgress) Done() {
	p.render(true)
	fmt.Fprintln(p.out)
}

func (p *RowProgress) render(force bool) {
	// throttle to ~10 updates per second
	if !force && time.Since(p.lastTick) < p.interval {
		return
	}
	p.lastTick = time.Now()

	if p.total > 0 {
		done := min(p.done, p.total)
		pct := float64(done) / float64(p.total) * 100
		fmt.Fprintf(p.out, "\rProgress: %6.2f%% (%d / %d rows)   ", pct, done, p.total)
		return
	}
	ch := spinner[p.spinIdx%len(spinner)]
	p.spinIdx++
	fmt.Fprintf(p.out, "\rProgress: [%c] %d rows   ", ch, p.done)
}
