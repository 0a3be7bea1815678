package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
	"i4.energy/across/cscctl/modem"
)

// Config holds the application configuration
type Config struct {
	// SerialPort is the device's modem port (e.g. "/dev/ttyACM0", "COM11" or
	// "tcp://127.0.0.1:7000"). Empty means auto-discovery.
	SerialPort string `yaml:"serialPort"`
	// BaudRate is the baud rate for serial communication with the device (e.g. 115200)
	BaudRate int `yaml:"baudRate"`
	// CSC is the sales code to write. Empty means the operator is prompted.
	CSC string `yaml:"csc"`
	// ADBPath is the debug bridge binary (e.g. "adb" or "/opt/platform-tools/adb")
	ADBPath string `yaml:"adbPath"`
	// SkipADB disables the debug bridge entirely
	SkipADB bool `yaml:"skipAdb"`
	// AssumeYes answers every confirmation with yes
	AssumeYes bool `yaml:"assumeYes"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"logLevel"`
	// LogFile sends the JSON log to a rotated file instead of stderr
	LogFile string `yaml:"logFile"`
	// PortHints are the substrings looked for in a port's product description
	PortHints []string `yaml:"portHints"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BaudRate = modem.DefaultBaudRate
		c.ADBPath = "adb"
		c.LogLevel = "warn"
		c.PortHints = slices.Clone(modem.DefaultPortHints)
		return nil
	}
}

// WithFile loads configuration from a YAML file. Keys missing from the file
// keep their current value. An empty path is ignored.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if code := os.Getenv("CSC"); code != "" {
			c.CSC = code
		}

		if path := os.Getenv("ADB_PATH"); path != "" {
			c.ADBPath = path
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if file := os.Getenv("LOG_FILE"); file != "" {
			c.LogFile = file
		}

		if hints := os.Getenv("PORT_HINTS"); hints != "" {
			c.PortHints = splitList(hints)
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "csc":
				c.CSC = f.Value.String()
			case "adb-path":
				c.ADBPath = f.Value.String()
			case "skip-adb":
				c.SkipADB = f.Value.String() == "true"
			case "yes":
				c.AssumeYes = f.Value.String() == "true"
			case "log-level":
				c.LogLevel = f.Value.String()
			case "log-file":
				c.LogFile = f.Value.String()
			case "port-hints":
				c.PortHints = splitList(f.Value.String())
			}
		})
		return nil
	}
}

// WithArgs accepts the positional form "<PORT> <CSC>". Either may be
// omitted from the end.
func WithArgs(args []string) ConfigOption {
	return func(c *Config) error {
		if len(args) > 2 {
			return fmt.Errorf("too many arguments: %q", args[2:])
		}
		if len(args) > 0 {
			c.SerialPort = args[0]
		}
		if len(args) > 1 {
			c.CSC = args[1]
		}
		return nil
	}
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
