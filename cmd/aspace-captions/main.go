// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Command aspace-captions creates "Caption" and "Transcript" child records
// in ArchivesSpace from a CSV, each linked to a new digital object.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aspace-tools/caption-linker/sdk/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if code := exitCode(os.Stderr, newRootCmd().ExecuteContext(ctx)); code != 0 {
		stop()
		os.Exit(code)
	}
}

// exitCode reports err on w. A declined confirmation is a clean exit.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil, errors.Is(err, utils.ErrAborted):
		return 0
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
}
