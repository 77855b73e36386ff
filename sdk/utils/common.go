// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

// ErrAborted is returned when the operator declines the confirmation gate.
var ErrAborted = errors.New("aborted by operator")

// Prompter reads operator answers line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints msg and returns the next line without surrounding blanks.
func (p *Prompter) Ask(msg string) (string, error) {
	line, err := p.readLine(msg)
	return strings.TrimSpace(line), err
}

// Confirm prints msg and reports whether the answer is exactly token.
func (p *Prompter) Confirm(msg, token string) (bool, error) {
	line, err := p.readLine(msg)
	if err != nil {
		return false, err
	}
	return line == token, nil
}

func (p *Prompter) readLine(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("error in reading user input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PrettyYAML renders v as YAML, falling back to fmt on failure.
func PrettyYAML(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
