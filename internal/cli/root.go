// Package cli wires the promptline commands together with cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"promptline/internal/config"
	"promptline/internal/engine"
)

// EnvDebug enables debug logging on stderr when set to a non-empty value.
const EnvDebug = "PROMPTLINE_DEBUG"

// app carries global flag values and shared state between commands.
type app struct {
	verbose    bool
	configFlag string

	getenv func(string) string
	logger *zap.Logger

	// collectors overrides the engine's data sources; nil members use the
	// real implementations.
	collectors engine.Collectors
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{getenv: os.Getenv})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "promptline",
		Short: "Two-line shell prompt with identity, session, time, directory and git status",
		Long: `promptline renders a two-line shell prompt.

Line one shows user@host, the tmux or screen session, the time, the
working directory and the git branch with divergence and cleanliness.
Line two is an input marker colored by the previous command's exit status.

Install the shell hook with:
  eval "$(promptline init bash)"   # or zsh`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.buildLogger()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log collector activity to stderr")
	root.PersistentFlags().StringVar(&a.configFlag, "config", "", "Config file (default $"+config.EnvConfig+" or the user config dir)")

	root.AddCommand(
		newRenderCommand(a),
		newInitCommand(a),
		newPreviewCommand(a),
		newVersionCommand(),
	)
	return root
}

// buildLogger returns a no-op logger unless debugging was requested; the
// prompt must not leak log lines into PS1.
func (a *app) buildLogger() (*zap.Logger, error) {
	if !a.verbose && a.getenv(EnvDebug) == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadConfig resolves and reads the config file for this invocation.
func (a *app) loadConfig() (*config.Config, string, error) {
	path, explicit := config.Path(a.configFlag, a.getenv)
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, path, err
	}
	a.logger.Debug("config loaded",
		zap.String("path", path),
		zap.String("theme", string(cfg.Preset)))
	return cfg, path, nil
}
