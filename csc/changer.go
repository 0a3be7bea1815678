package csc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"i4.energy/across/cscctl/at"
)

//go:generate go tool mockgen -destination=mock_csc.go -package=csc . Commander

// TotalSteps is the number of steps of the procedure.
const TotalSteps = 6

// Commander exchanges one command with the device. *modem.Modem implements
// it. An empty response means the exchange was inconclusive.
type Commander interface {
	Send(ctx context.Context, cmd string, settle time.Duration) string
}

// Progress is passed to the ProgressCallback before each step.
type Progress struct {
	Step        int
	Total       int
	State       State
	Description string
}

// ProgressCallback is called before every step of the procedure.
// Implementations should return quickly.
type ProgressCallback func(Progress)

// StepResult captures one exchange of the procedure.
type StepResult struct {
	Step     int
	Command  string
	Response string
	Gate     Gate
	// Want is the substring the response is checked for, if gated
	Want   string
	Passed bool
}

// Report describes a finished or aborted run.
type Report struct {
	CSC   string
	State State
	// FailedAt is the state the run was in when it moved to Failed. A
	// rejected CSC write fails from CscConfigured.
	FailedAt State
	Steps    []StepResult
	// Mismatches lists the advisory checks that failed
	Mismatches []*MismatchError
}

// Succeeded reports whether the procedure reached the reboot.
func (r *Report) Succeeded() bool {
	return r.State == Done
}

// step is one row of the procedure plan.
type step struct {
	number      int
	description string
	commands    []string
	gate        Gate
	want        string
	// reached is the state entered once the step completes
	reached State
	// gap separates consecutive commands of the step
	gap time.Duration
	// pause follows the step
	pause time.Duration
}

// Changer runs the CSC change procedure over a Commander.
type Changer struct {
	cmd    Commander
	config Config
}

// New returns a Changer using cmd for the exchanges.
func New(cmd Commander, opts ...Option) *Changer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Changer{cmd: cmd, config: config}
}

func (c *Changer) plan(code string) []step {
	timing := c.config.Timing
	return []step{
		{
			number:      1,
			description: "Switching to DDEXE mode",
			commands:    []string{at.CmdModeDDEXE},
			reached:     ModeDDEXE,
			pause:       timing.ModeSwitch,
		},
		{
			number:      2,
			description: "Activating",
			commands:    []string{at.CmdActivate},
			gate:        GateAdvisory,
			want:        at.OK,
			reached:     Activated,
		},
		{
			number:      3,
			description: "Switching to ATD mode",
			commands:    []string{at.CmdModeATD},
			reached:     ModeATD,
			pause:       timing.ModeSwitch,
		},
		{
			number:      4,
			description: "Setting CSC to " + code,
			commands:    []string{at.SetSalesCode(code)},
			gate:        GateRequired,
			want:        at.OK,
			reached:     CscConfigured,
		},
		{
			number:      5,
			description: "Verifying configuration",
			commands:    []string{at.CmdQuerySales},
			gate:        GateAdvisory,
			want:        code,
			reached:     Verified,
		},
		{
			number:      6,
			description: "Rebooting device",
			commands:    []string{at.CmdModeDDEXE, at.CmdReboot},
			reached:     Rebooting,
			gap:         timing.RebootGap,
		},
	}
}

// Change writes code as the device CSC, verifies it and reboots the device.
//
// Only the acknowledgement of the CSC write (step 4) is authoritative: when
// it lacks "OK" the run stops with a *GateError and no further command is
// sent. Activation (step 2) and verification (step 5) mismatches are logged
// and collected in Report.Mismatches, and the reboot still happens.
//
// The returned Report is never nil. Nothing is retried.
func (c *Changer) Change(ctx context.Context, code string) (*Report, error) {
	report := &Report{CSC: code, State: Start}

	normalized, err := Normalize(code)
	if err != nil {
		report.State = Failed
		return report, err
	}
	report.CSC = normalized

	logger := c.config.Logger.With("csc", normalized)

	if err := c.wait(ctx, c.config.Timing.Preamble); err != nil {
		return c.abort(report, err)
	}

	for _, s := range c.plan(normalized) {
		c.notify(s)
		logger.Info("Step started", "step", s.number, "total", TotalSteps, "description", s.description)

		for i, command := range s.commands {
			if i > 0 {
				if err := c.wait(ctx, s.gap); err != nil {
					return c.abort(report, err)
				}
			}

			resp := c.cmd.Send(ctx, command, c.config.Timing.Settle)
			if err := ctx.Err(); err != nil {
				return c.abort(report, err)
			}

			result := StepResult{
				Step:     s.number,
				Command:  command,
				Response: resp,
				Gate:     s.gate,
				Want:     s.want,
				Passed:   s.gate == GateNone || strings.Contains(resp, s.want),
			}
			report.Steps = append(report.Steps, result)

			if result.Passed {
				continue
			}
			switch s.gate {
			case GateRequired:
				gateErr := &GateError{Step: s.number, Command: command, Want: s.want, Response: resp}
				logger.Error("Step failed", "step", s.number, "error", gateErr)
				report.FailedAt = s.reached
				report.State = Failed
				return report, gateErr
			case GateAdvisory:
				mismatch := &MismatchError{Step: s.number, Command: command, Want: s.want, Response: resp}
				logger.Warn("Unexpected response", "step", s.number, "error", mismatch)
				report.Mismatches = append(report.Mismatches, mismatch)
			}
		}

		report.State = s.reached

		if err := c.wait(ctx, s.pause); err != nil {
			return c.abort(report, err)
		}
	}

	report.State = Done
	logger.Info("CSC changed", "mismatches", len(report.Mismatches))
	return report, nil
}

// wait sleeps d on the configured clock. Zero delays only check ctx.
func (c *Changer) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	return c.config.Clock.Sleep(ctx, d)
}

func (c *Changer) notify(s step) {
	if c.config.ProgressCallback == nil {
		return
	}
	c.config.ProgressCallback(Progress{
		Step:        s.number,
		Total:       TotalSteps,
		State:       s.reached,
		Description: s.description,
	})
}

func (c *Changer) abort(report *Report, err error) (*Report, error) {
	c.config.Logger.Warn("CSC change interrupted", "state", report.State.String(), "error", err)
	report.FailedAt = report.State
	report.State = Failed
	return report, fmt.Errorf("interrupted: %w", err)
}
