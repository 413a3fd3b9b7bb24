package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/tmux-popup-otp/internal/app"
	"github.com/atomicstack/tmux-popup-otp/internal/config"
	"github.com/atomicstack/tmux-popup-otp/internal/logging"
	"github.com/atomicstack/tmux-popup-otp/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runApp = app.Run

// configError marks failures that happen before the popup starts.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }

func (e configError) Unwrap() error { return e.err }

func main() {
	cmd := newRootCmd(os.Args[1:], os.Environ())
	if err := cmd.Execute(); err != nil {
		os.Exit(report(err))
	}
}

func newRootCmd(args, environ []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Segmented one-time code entry for tmux popups",
		Long: `tmux-popup-otp shows a row of single-character cells for entering a
one-time code. Typing advances through the cells, backspace walks back and
pasting fills every cell at once. The accepted code is printed on stdout,
loaded into a tmux buffer or typed into a pane.`,
		Example: `  tmux display-popup -E 'tmux-popup-otp --deliver send-keys --target "#{pane_id}"'
  code=$(tmux-popup-otp --length 6)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, positional []string) error {
			if len(positional) > 0 {
				return configError{fmt.Errorf("unexpected arguments: %v", positional)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtimeCfg, err := config.FromFlags(cmd.Flags(), environ)
			if err != nil {
				return configError{err}
			}
			runtimeCfg.Args = append([]string(nil), args...)
			if err := config.Validate(runtimeCfg); err != nil {
				return configError{err}
			}
			logging.Configure(runtimeCfg.Logging.FilePath)
			logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

			traceStartup(runtimeCfg)

			if err := runApp(runtimeCfg.App); err != nil {
				if !errors.Is(err, app.ErrCancelled) {
					logging.Error(err)
				}
				return err
			}
			return nil
		},
	}
	cmd.SetArgs(args)
	config.BindFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError{err}
	})
	return cmd
}

// report prints err the way the popup's caller expects and returns the exit
// status: 2 for configuration problems, 1 otherwise. A cancelled popup exits
// quietly.
func report(err error) int {
	var cfgErr configError
	switch {
	case errors.Is(err, app.ErrCancelled):
		return 1
	case errors.As(err, &cfgErr):
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", cfgErr.err)
		return 2
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and
// dimensions. With stdout delivery the popup draws on stderr, so stdout is
// expected to be a pipe.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
