// Package adb queries a Samsung device through the Android Debug Bridge
// host tool.
package adb

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	DefaultPath    = "adb"
	DefaultTimeout = 10 * time.Second

	// SalesCodeListPath is the file listing the CSCs the firmware accepts.
	SalesCodeListPath = "product/omc/sales_code_list.dat"
	SalesCodeProperty = "ro.csc.sales_code"

	versionBanner = "Android Debug Bridge"
)

//go:generate go tool mockgen -destination=mock_adb.go -package=adb . Runner

// Runner runs an external program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// Bridge wraps the adb binary. Every call is bounded by Timeout.
type Bridge struct {
	Path    string
	Timeout time.Duration
	Runner  Runner
	Logger  *slog.Logger
}

type Option func(*Bridge)

func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) { b.Timeout = d }
}

func WithRunner(r Runner) Option {
	return func(b *Bridge) { b.Runner = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) { b.Logger = logger }
}

// New returns a Bridge running the binary at path, or "adb" from PATH when
// path is empty.
func New(path string, opts ...Option) *Bridge {
	if path == "" {
		path = DefaultPath
	}
	b := &Bridge{
		Path:    path,
		Timeout: DefaultTimeout,
		Runner:  ExecRunner{},
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) run(ctx context.Context, args ...string) ([]byte, error) {
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	b.Logger.Debug("Running debug bridge", "path", b.Path, "args", args)
	out, err := b.Runner.Run(ctx, b.Path, args...)
	if err != nil {
		b.Logger.Debug("Debug bridge failed", "args", args, "error", err)
		return nil, err
	}
	return out, nil
}

// Version returns the first line of "adb version". It fails with
// ErrNotFound when the binary cannot be run or does not identify itself as
// the debug bridge.
func (b *Bridge) Version(ctx context.Context) (string, error) {
	out, err := b.run(ctx, "version")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	text := string(out)
	if !strings.Contains(text, versionBanner) {
		return "", fmt.Errorf("%w: unexpected output from %s version", ErrNotFound, b.Path)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line), nil
}

// Devices returns the serials of the attached devices that are online, or
// ErrNoDevice when there are none.
func (b *Bridge) Devices(ctx context.Context) ([]string, error) {
	out, err := b.run(ctx, "devices")
	if err != nil {
		return nil, err
	}
	serials := ParseDevices(out)
	if len(serials) == 0 {
		return nil, ErrNoDevice
	}
	return serials, nil
}

// ParseDevices extracts the serials in state "device" from the output of
// "adb devices".
func ParseDevices(out []byte) []string {
	var serials []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[1] != "device" {
			continue
		}
		serials = append(serials, fields[0])
	}
	return serials
}

// SalesCodes reads the list of CSCs the device firmware accepts.
func (b *Bridge) SalesCodes(ctx context.Context) ([]string, error) {
	out, err := b.run(ctx, "shell", "cat", SalesCodeListPath)
	if err != nil {
		return nil, err
	}
	return ParseSalesCodes(out), nil
}

// ParseSalesCodes keeps the three letter codes of a sales code list. Entries
// may carry a path prefix such as "single/", which is dropped.
func ParseSalesCodes(out []byte) []string {
	var codes []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		entry := strings.TrimSpace(scanner.Text())
		if i := strings.LastIndexByte(entry, '/'); i >= 0 {
			entry = entry[i+1:]
		}
		if isSalesCode(entry) {
			codes = append(codes, entry)
		}
	}
	return codes
}

func isSalesCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// CurrentSalesCode returns the CSC the device currently runs with.
func (b *Bridge) CurrentSalesCode(ctx context.Context) (string, error) {
	out, err := b.run(ctx, "shell", "getprop", SalesCodeProperty)
	if err != nil {
		return "", err
	}
	code := strings.TrimSpace(string(out))
	if code == "" {
		return "", ErrEmptyValue
	}
	return code, nil
}
