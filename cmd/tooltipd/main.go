package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tooltip/internal/config"
	"github.com/vango-dev/tooltip/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tooltipd",
		Short: "Server-driven tooltips over WebSocket",
		Long: `tooltipd serves documents whose elements declare tooltips and
opens or closes popovers as pointer events arrive from the browser.

It can also replay scripted interactions against the same controller,
which is handy for checking delays and touch behavior without a browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to tooltip.json (default: ./tooltip.json if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&flags.logJSON, "log-json", false, "Log as JSON")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		serveCmd(flags),
		replayCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the --config file, or tooltip.json in the working
// directory, or the defaults. Flags then override the file.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.LoadOrDefault(".")
	}
	if err != nil {
		return nil, err
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logJSON {
		cfg.Log.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg and installs it as the
// slog default.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
