package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const rule = 50

// Console prints operator facing status lines.
type Console struct {
	w       io.Writer
	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	step    *color.Color
}

// NewConsole writes to w. With noColor set the output is plain text.
func NewConsole(w io.Writer, noColor bool) *Console {
	c := &Console{
		w:       w,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		step:    color.New(color.FgBlue, color.Bold),
	}
	if noColor {
		for _, col := range []*color.Color{c.info, c.success, c.warn, c.fail, c.step} {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) Info(format string, args ...any) {
	c.info.Fprintf(c.w, "[*] "+format+"\n", args...)
}

func (c *Console) Success(format string, args ...any) {
	c.success.Fprintf(c.w, "[✓] "+format+"\n", args...)
}

func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprintf(c.w, "[!] "+format+"\n", args...)
}

func (c *Console) Fail(format string, args ...any) {
	c.fail.Fprintf(c.w, "[✗] "+format+"\n", args...)
}

// Step prints the "[n/total] description..." header of a procedure step.
func (c *Console) Step(n, total int, description string) {
	c.step.Fprintf(c.w, "\n[%d/%d] %s...\n", n, total, description)
}

func (c *Console) Println(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) Banner(title string) {
	line := strings.Repeat("=", rule)
	fmt.Fprintf(c.w, "%s\n  %s\n%s\n", line, title, line)
}
