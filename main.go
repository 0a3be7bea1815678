package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
	"i4.energy/across/cscctl/adb"
	"i4.energy/across/cscctl/modem"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [PORT] [CSC]\n", os.Args[0])
		flag.PrintDefaults()
	}
	configFile := flag.String("config", "", "YAML configuration file")
	flag.String("serial-port", "", "Serial port of the device (empty for auto-discovery, tcp://host:port for emulators)")
	flag.Int("baud-rate", modem.DefaultBaudRate, "Baud rate for serial communication")
	flag.String("csc", "", "CSC to write (prompted when empty)")
	flag.String("adb-path", "adb", "Path to the adb binary")
	flag.Bool("skip-adb", false, "Do not use adb to read the allowed CSC list")
	flag.Bool("yes", false, "Do not ask for confirmation")
	flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.String("log-file", "", "Write the log to a rotated file instead of stderr")
	flag.String("port-hints", "", "Comma separated port description hints")
	flag.Parse()

	config, err := LoadConfig(
		WithDefaults(),
		WithFile(*configFile),
		WithEnv(),
		WithFlags(flag.CommandLine),
		WithArgs(flag.Args()),
	)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return exitFailed
	}

	logger, closeLog := newLogger(config)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompter := NewLinePrompter()
	defer prompter.Close()

	app := &App{
		Config:   config,
		Logger:   logger,
		Console:  NewConsole(os.Stdout, color.NoColor),
		Prompter: prompter,
		Ports:    modem.NewDiscoverer(logger.With("component", "discovery"), config.PortHints...),
		NewDialer: func(port string) modem.Dialer {
			return modem.NewDialer(port, config.BaudRate, modem.DefaultReadTimeout)
		},
	}
	if !config.SkipADB {
		app.Bridge = adb.New(config.ADBPath, adb.WithLogger(logger.With("component", "adb")))
	}

	return app.Run(ctx)
}

func newLogger(config *Config) (*slog.Logger, func()) {
	logLevel := slog.LevelWarn
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	var out io.Writer = os.Stderr
	closeLog := func() {}
	if config.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		}
		out = file
		closeLog = func() { file.Close() }
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger, closeLog
}
