package adb_test

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"i4.energy/across/cscctl/adb"
)

var discard = slog.New(slog.DiscardHandler)

func newBridge(t *testing.T) (*adb.Bridge, *adb.MockRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := adb.NewMockRunner(ctrl)
	return adb.New("/opt/platform-tools/adb", adb.WithRunner(runner), adb.WithLogger(discard)), runner
}

func TestNew(t *testing.T) {
	t.Run("Empty path falls back to adb from PATH", func(t *testing.T) {
		b := adb.New("")
		if b.Path != adb.DefaultPath {
			t.Errorf("expected path %q, got %q", adb.DefaultPath, b.Path)
		}
		if b.Timeout != adb.DefaultTimeout {
			t.Errorf("expected timeout %v, got %v", adb.DefaultTimeout, b.Timeout)
		}
	})

	t.Run("Options are applied", func(t *testing.T) {
		b := adb.New("adb", adb.WithTimeout(time.Second))
		if b.Timeout != time.Second {
			t.Errorf("expected timeout 1s, got %v", b.Timeout)
		}
	})
}

func TestVersion(t *testing.T) {
	t.Run("Banner is recognised", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), "/opt/platform-tools/adb", "version").Return(
			[]byte("Android Debug Bridge version 1.0.41\nVersion 35.0.2-12147458\n"), nil)

		version, err := b.Version(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if version != "Android Debug Bridge version 1.0.41" {
			t.Errorf("unexpected version %q", version)
		}
	})

	t.Run("Failure to run is reported as not found", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "version").Return(nil, errors.New("exec: not found"))

		if _, err := b.Version(context.Background()); !errors.Is(err, adb.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("Other program is reported as not found", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "version").Return([]byte("usage: something else\n"), nil)

		if _, err := b.Version(context.Background()); !errors.Is(err, adb.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("Missing binary is reported as not found", func(t *testing.T) {
		b := adb.New("/nonexistent/adb", adb.WithLogger(discard))

		if _, err := b.Version(context.Background()); !errors.Is(err, adb.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("Calls are bounded by the timeout", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "version").DoAndReturn(
			func(ctx context.Context, _ string, _ ...string) ([]byte, error) {
				deadline, ok := ctx.Deadline()
				if !ok {
					t.Error("expected a deadline on the context")
				} else if time.Until(deadline) > adb.DefaultTimeout {
					t.Errorf("deadline %v exceeds the timeout", time.Until(deadline))
				}
				return []byte("Android Debug Bridge version 1.0.41\n"), nil
			})

		if _, err := b.Version(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestDevices(t *testing.T) {
	t.Run("Only online devices are listed", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "devices").Return([]byte(
			"List of devices attached\n"+
				"R58M12ABCDE\tdevice\n"+
				"R58M99ZZZZZ\toffline\n"+
				"emulator-5554\tunauthorized\n"+
				"RF8N30XYZ\tdevice\n\n"), nil)

		serials, err := b.Devices(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"R58M12ABCDE", "RF8N30XYZ"}
		if !slices.Equal(serials, want) {
			t.Errorf("expected %v, got %v", want, serials)
		}
	})

	t.Run("No devices", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "devices").Return([]byte("List of devices attached\n\n"), nil)

		if _, err := b.Devices(context.Background()); !errors.Is(err, adb.ErrNoDevice) {
			t.Errorf("expected ErrNoDevice, got: %v", err)
		}
	})
}

func TestParseSalesCodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "Plain list", input: "XEO\nZTO\nPEO\n", want: []string{"XEO", "ZTO", "PEO"}},
		{name: "Single prefix", input: "single/XEO\r\nsingle/CHO\r\n", want: []string{"XEO", "CHO"}},
		{name: "Blank lines and padding", input: "\n  XEO  \n\n", want: []string{"XEO"}},
		{name: "Codes with digits are dropped", input: "XE0\nZTO\n", want: []string{"ZTO"}},
		{name: "Wrong length is dropped", input: "XEOX\nXE\nZTO", want: []string{"ZTO"}},
		{name: "Empty output", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adb.ParseSalesCodes([]byte(tt.input))
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSalesCodes(t *testing.T) {
	t.Run("List file is read through the shell", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "shell", "cat", adb.SalesCodeListPath).
			Return([]byte("single/XEO\nsingle/ZTO\n"), nil)

		codes, err := b.SalesCodes(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(codes, []string{"XEO", "ZTO"}) {
			t.Errorf("unexpected codes %v", codes)
		}
	})

	t.Run("Non zero exit is returned", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "shell", "cat", adb.SalesCodeListPath).
			Return(nil, errors.New("exit status 1"))

		codes, err := b.SalesCodes(context.Background())
		if err == nil {
			t.Fatal("expected an error")
		}
		if codes != nil {
			t.Errorf("expected no codes, got %v", codes)
		}
	})
}

func TestCurrentSalesCode(t *testing.T) {
	t.Run("Property is trimmed", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "shell", "getprop", adb.SalesCodeProperty).
			Return([]byte("ZTO\r\n"), nil)

		code, err := b.CurrentSalesCode(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != "ZTO" {
			t.Errorf("expected ZTO, got %q", code)
		}
	})

	t.Run("Empty property", func(t *testing.T) {
		b, runner := newBridge(t)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "shell", "getprop", adb.SalesCodeProperty).
			Return([]byte("\n"), nil)

		if _, err := b.CurrentSalesCode(context.Background()); !errors.Is(err, adb.ErrEmptyValue) {
			t.Errorf("expected ErrEmptyValue, got: %v", err)
		}
	})
}
