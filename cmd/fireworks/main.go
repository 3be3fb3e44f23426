package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/loop/client"
)

func main() {
	logger := newLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Warn("using default configuration", "err", err)
		cfg = config.Default()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(cfg, reader, os.Stdout, client.ClientOptions{
		Logger:   logger,
		Autoplay: config.GetEnvBool("FIREWORKS_AUTOPLAY", false),
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "fireworks error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to stderr, or to FIREWORKS_LOG_FILE when set, since the
// show owns the terminal.
func newLogger() *log.Logger {
	out := os.Stderr
	if path := config.GetEnv("FIREWORKS_LOG_FILE", ""); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "fireworks",
		Level:           log.WarnLevel,
	})
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "warn")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
