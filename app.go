package main

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"i4.energy/across/cscctl/at"
	"i4.energy/across/cscctl/csc"
	"i4.energy/across/cscctl/modem"
)

const (
	exitOK     = 0
	exitFailed = 1
)

// Bridge is the part of *adb.Bridge the application uses.
type Bridge interface {
	Version(ctx context.Context) (string, error)
	Devices(ctx context.Context) ([]string, error)
	SalesCodes(ctx context.Context) ([]string, error)
	CurrentSalesCode(ctx context.Context) (string, error)
}

// PortFinder locates the device's modem port. *modem.Discoverer implements it.
type PortFinder interface {
	Discover() (string, bool)
}

// App runs one interactive CSC change.
type App struct {
	Config   *Config
	Logger   *slog.Logger
	Console  *Console
	Prompter Prompter
	// Bridge is nil when the debug bridge is disabled
	Bridge Bridge
	Ports  PortFinder
	// NewDialer returns the dialer for the chosen port
	NewDialer func(port string) modem.Dialer
	// Clock paces the modem and the procedure, nil means real time
	Clock modem.Clock
}

// Run executes the whole flow and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	a.Console.Banner("SAMSUNG CSC CHANGER")

	var allowed []string
	if a.Bridge != nil {
		var ok bool
		if allowed, ok = a.queryDevice(ctx); !ok {
			return exitFailed
		}
	}

	code, err := a.askCode()
	if err != nil {
		return a.promptFailed(err)
	}
	code, err = csc.Normalize(code)
	if err != nil {
		a.Console.Fail("The CSC must be exactly 3 letters")
		a.Logger.Error("Invalid CSC", "error", err)
		return exitFailed
	}

	if len(allowed) > 0 && !slices.Contains(allowed, code) {
		a.Console.Warn("%s is not in the list of CSCs allowed by the device", code)
		yes, err := a.confirm("Continue anyway? (y/n): ")
		if err != nil {
			return a.promptFailed(err)
		}
		if !yes {
			a.Console.Println("Operation cancelled")
			return exitOK
		}
	}

	port, err := a.askPort()
	if err != nil {
		return a.promptFailed(err)
	}
	if port == "" {
		a.Console.Fail("No serial port given")
		return exitFailed
	}

	a.Console.Warn("The CSC will be changed to: %s", code)
	a.Console.Warn("Using port: %s", port)
	yes, err := a.confirm("Continue? (y/n): ")
	if err != nil {
		return a.promptFailed(err)
	}
	if !yes {
		a.Console.Println("Operation cancelled")
		return exitOK
	}

	return a.change(ctx, port, code)
}

// queryDevice checks the bridge and reads the allowed CSC list. Only a
// missing bridge is fatal.
func (a *App) queryDevice(ctx context.Context) ([]string, bool) {
	version, err := a.Bridge.Version(ctx)
	if err != nil {
		a.Console.Fail("ADB not found")
		a.Console.Println("    Make sure adb is in the PATH or pass -adb-path, or use -skip-adb")
		a.Logger.Error("Debug bridge unavailable", "error", err)
		return nil, false
	}
	a.Logger.Info("Debug bridge found", "version", version)

	if devices, err := a.Bridge.Devices(ctx); err != nil {
		a.Console.Warn("No device visible to ADB")
		a.Logger.Warn("Failed to list devices", "error", err)
	} else {
		a.Logger.Info("Devices attached", "serials", devices)
	}

	if current, err := a.Bridge.CurrentSalesCode(ctx); err == nil {
		a.Console.Info("Current CSC: %s", current)
	} else {
		a.Logger.Debug("Failed to read current CSC", "error", err)
	}

	a.Console.Info("Reading available CSC list...")
	allowed, err := a.Bridge.SalesCodes(ctx)
	if err != nil {
		a.Logger.Warn("Failed to read CSC list", "error", err)
		return nil, true
	}
	if len(allowed) > 0 {
		a.Console.Info("CSCs available on your device:")
		for i, code := range allowed {
			a.Console.Println("    %2d. %s", i+1, code)
		}
	}
	return allowed, true
}

func (a *App) askCode() (string, error) {
	if a.Config.CSC != "" {
		return a.Config.CSC, nil
	}
	return a.Prompter.Prompt("Enter the CSC you want (e.g. ZTO, CHO, PEO): ")
}

func (a *App) askPort() (string, error) {
	if a.Config.SerialPort != "" {
		return a.Config.SerialPort, nil
	}
	if port, ok := a.Ports.Discover(); ok {
		a.Console.Info("Samsung port found: %s", port)
		return port, nil
	}
	a.Console.Warn("No Samsung port found automatically")
	port, err := a.Prompter.Prompt("Enter the serial port manually (e.g. COM11, /dev/ttyACM0): ")
	return strings.TrimSpace(port), err
}

func (a *App) confirm(label string) (bool, error) {
	if a.Config.AssumeYes {
		return true, nil
	}
	answer, err := a.Prompter.Prompt(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	return false, nil
}

func (a *App) promptFailed(err error) int {
	if errors.Is(err, ErrAborted) {
		a.Console.Warn("Operation cancelled by the user")
	} else {
		a.Console.Fail("Failed to read input: %v", err)
	}
	return exitFailed
}

func (a *App) change(ctx context.Context, port, code string) int {
	builder := modem.NewConfigBuilder().
		WithDialer(a.NewDialer(port)).
		WithLogger(a.Logger.With("component", "modem", "port", port))
	if a.Clock != nil {
		builder = builder.WithClock(a.Clock)
	}
	modemConfig, err := builder.Build()
	if err != nil {
		a.Logger.Error("Failed to create modem config", "error", err)
		return exitFailed
	}

	a.Console.Info("Opening port %s...", port)
	m, err := modem.New(ctx, modemConfig)
	if err != nil {
		a.Console.Fail("Serial port error: %v", err)
		a.Console.Println("    Check that the device is in MTP mode")
		a.Logger.Error("Failed to open modem", "error", err)
		return exitFailed
	}
	defer func() {
		if err := m.Close(); err != nil {
			a.Logger.Warn("Failed to close modem", "error", err)
		}
	}()
	a.Console.Info("Port opened")

	opts := []csc.Option{
		csc.WithLogger(a.Logger.With("component", "csc")),
		csc.WithProgressCallback(func(p csc.Progress) {
			a.Console.Step(p.Step, p.Total, p.Description)
		}),
	}
	if a.Clock != nil {
		opts = append(opts, csc.WithClock(a.Clock))
	}

	report, err := csc.New(m, opts...).Change(ctx, code)
	for _, mismatch := range report.Mismatches {
		a.Console.Warn("Unexpected response at step %d: %s", mismatch.Step, rawResponse(mismatch.Response))
	}

	var gateErr *csc.GateError
	switch {
	case errors.As(err, &gateErr):
		a.Console.Fail("Could not set the CSC")
		if result, ok := at.FinalResult(gateErr.Response); ok {
			a.Logger.Error("CSC write rejected", "result", result)
		}
		a.Console.Println("    Response: %s", rawResponse(gateErr.Response))
		a.Console.Fail("The process failed. Check the errors above.")
		return exitFailed
	case errors.Is(err, context.Canceled):
		a.Console.Warn("Operation cancelled by the user")
		return exitFailed
	case err != nil:
		a.Console.Fail("%v", err)
		return exitFailed
	}

	a.Console.Banner("CSC CHANGED SUCCESSFULLY")
	a.Console.Success("New CSC: %s", report.CSC)
	a.Console.Info("The device is rebooting...")
	return exitOK
}

// rawResponse returns resp as the device sent it, without the surrounding
// line breaks.
func rawResponse(resp string) string {
	if resp = strings.TrimSpace(resp); resp == "" {
		return "(no response)"
	}
	return resp
}
