package main

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads one line of operator input.
type Prompter interface {
	Prompt(label string) (string, error)
}

// LinePrompter reads from the terminal with line editing.
type LinePrompter struct {
	state *liner.State
}

func NewLinePrompter() *LinePrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinePrompter{state: state}
}

// Prompt returns the line typed by the operator. Ctrl-C and Ctrl-D give
// ErrAborted.
func (p *LinePrompter) Prompt(label string) (string, error) {
	line, err := p.state.Prompt(label)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (p *LinePrompter) Close() error {
	return p.state.Close()
}
