package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"promptline/internal/hook"
	"promptline/internal/render"
)

func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "init bash|zsh",
		Short:     "Print the shell hook that installs the prompt",
		Long:      `Prints a snippet for eval in ~/.bashrc or ~/.zshrc.`,
		Example:   `  eval "$(promptline init bash)"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(render.ShellBash), string(render.ShellZsh)},
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := render.ParseShell(args[0])
			if err != nil {
				return err
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate promptline binary: %w", err)
			}
			if resolved, err := filepath.EvalSymlinks(exe); err == nil {
				exe = resolved
			}

			configPath := a.configFlag
			if configPath != "" {
				if abs, err := filepath.Abs(configPath); err == nil {
					configPath = abs
				}
			}

			script, err := hook.Script(sh, exe, configPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}
}
