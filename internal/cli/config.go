package cli

import (
	"fmt"

	"github.com/Davincible/bsgs/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates a command group for inspecting the config file
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the bsgs configuration",
		Long: `Manage the JSON configuration file.

The file lives at $BSGS_CONFIG, $XDG_CONFIG_HOME/bsgs/config.json or
~/.config/bsgs/config.json, and is created with defaults on first use.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigPathCommand(),
		newConfigResetCommand(),
	)

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewConfigManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), cm.GetConfig())
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewConfigManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cm.Path())
			return nil
		},
	}
}

func newConfigResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The existing file is not read, so a broken config can be reset too.
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cm := config.NewDefaultConfigManager(path)
			if err := cm.Reset(); err != nil {
				return fmt.Errorf("failed to reset config: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Configuration reset: %s\n", cm.Path())
			return nil
		},
	}
}
