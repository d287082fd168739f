/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"github.com/cristianoliveira/tip/internal/colors"
	"github.com/cristianoliveira/tip/internal/config"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "tip",
	Short: "Toasts, confirms, prompts and loading overlays for the terminal.",
	Long: `tip shows feedback in the terminal from shell scripts.

Toasts disappear on their own, confirm and prompt dialogs report the answer
through the exit status and stdout, and loading keeps an overlay up while a
command runs.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// setup loads configuration and starts logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()

	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning("file logging disabled: " + err.Error())
		return nil
	}
	log := logging.GetGlobal().With("command", cmd.Name())
	colors.SetLogger(log)
	log.Debug("command started", "args", len(args))
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
}
