package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptline/internal/config"
	"promptline/internal/engine"
	"promptline/internal/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var exitCode int
	shell := shellValue{shell: render.ShellNone}
	color := colorValue{mode: "auto"}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the prompt for the current directory",
		Long: `Runs one prompt cycle: records --exit-code as the status of the command
that just finished, collects identity, session, time, directory and git
status, and prints both prompt lines. Collector failures never fail the
command; the affected segment is left out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := color.profile(cmd.OutOrStdout())

			cfg, _, err := a.loadConfig()
			if err != nil {
				// A broken config must not take the prompt away.
				fmt.Fprintf(cmd.ErrOrStderr(), "promptline: %v\n", err)
				a.logger.Debug("falling back to default config", zap.Error(err))
				cfg = config.DefaultConfig()
			}

			e := engine.New(cfg, a.collectors, render.NewStyler(cfg.Theme, profile, shell.shell), a.logger)
			e.OnCommandComplete(exitCode)
			fmt.Fprint(cmd.OutOrStdout(), e.OnPromptRender(cmd.Context()))
			return nil
		},
	}

	cmd.Flags().IntVar(&exitCode, "exit-code", 0, "Exit status of the previous command")
	cmd.Flags().Var(&shell, "shell", "Escape style for the line editor: bash, zsh or none")
	cmd.Flags().Var(&color, "color", "Color mode: auto, truecolor, 256, 16 or none")
	return cmd
}
