// Package main provides the CLI entrypoint for speedtype.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/speedtype/internal/clock"
	"github.com/verte-zerg/speedtype/internal/config"
	"github.com/verte-zerg/speedtype/internal/logging"
	"github.com/verte-zerg/speedtype/internal/model"
	"github.com/verte-zerg/speedtype/internal/session"
	"github.com/verte-zerg/speedtype/internal/stats"
	"github.com/verte-zerg/speedtype/internal/tui"
)

const defaultLogLevel = "info"

var (
	testTime string
	logFile  string
	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(completeTimeArg(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "speedtype",
		Short:         "Terminal typing speed test",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().StringVarP(&testTime, "time", "t", "", fmt.Sprintf("test duration in seconds (default %d)", session.DefaultDuration))
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "append debug log records to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveLogConfig(cmd, fileCfg)

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	resolveTestConfig(cmd, fileCfg, &cfg, logger)
	logger.Debug("starting test", "duration", cfg.Duration, "chars", len([]rune(cfg.Text)))

	m := tui.NewModel(cfg, clock.System{}, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	res, ok := m.Result()
	if !ok {
		return nil
	}
	if err := stats.RenderResult(cmd.OutOrStdout(), res); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// resolveLogConfig starts a config from the log flags, filled in from the config
// file where a flag was not set.
func resolveLogConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	cfg := model.Config{LogFile: logFile, LogLevel: logLevel}
	applyStringConfig(cmd, "log-file", &cfg.LogFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &cfg.LogLevel, fileCfg.Log.Level)
	return cfg
}

// resolveTestConfig merges flags over the config file over defaults. A bad --time
// value never fails the run; it falls back to the configured or default duration.
func resolveTestConfig(cmd *cobra.Command, fileCfg config.FileConfig, cfg *model.Config, logger *slog.Logger) {
	cfg.Duration = session.DefaultDuration
	cfg.Text = config.DefaultText
	if d := fileCfg.Test.Duration; d != nil {
		if *d > 0 {
			cfg.Duration = *d
		} else {
			logger.Debug("ignoring non-positive config duration", "duration", *d)
		}
	}
	if t := fileCfg.Test.Text; t != nil && strings.TrimSpace(*t) != "" {
		cfg.Text = *t
	}
	if cmd.Flags().Changed("time") {
		if d, ok := parseDuration(testTime); ok {
			cfg.Duration = d
		} else {
			logger.Debug("ignoring invalid --time value", "value", testTime, "duration", cfg.Duration)
		}
	}
}

// completeTimeArg gives a trailing -t or --time an empty value, so a missing
// duration takes the fallback path instead of failing flag parsing.
func completeTimeArg(args []string) []string {
	if n := len(args); n > 0 && (args[n-1] == "-t" || args[n-1] == "--time") {
		return append(args[:n:n], "")
	}
	return args
}

// parseDuration reads a positive number of seconds.
func parseDuration(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file at path unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# speedtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d           # Test duration in seconds (-t)
# text = %q

[log]
# file = %q
# level = %q              # debug, info, warn or error
`,
		session.DefaultDuration,
		config.DefaultText,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
