/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/tip"
	"github.com/cristianoliveira/tip/cmd"
	"github.com/spf13/cobra"
)

type promptClient interface {
	Prompt(ctx context.Context, message string, opts tip.Options) (string, bool, error)
}

// NewPromptCmd creates the prompt command with explicit dependencies.
func NewPromptCmd(client promptClient) *cobra.Command {
	if client == nil {
		panic("NewPromptCmd: client dependency cannot be nil")
	}

	var opts tip.Options

	promptCmd := &cobra.Command{
		Use:   "prompt [OPTIONS] <message>",
		Short: "Ask for a line of text",
		Long: `tip prompt - Ask for a line of text

USAGE:
    tip prompt [OPTIONS] <message>

OPTIONS:
    --title <text>          Dialog title (default: Input)
    --placeholder <text>    Placeholder shown while the input is empty
    --default <text>        Initial input value
    --confirm-text <text>   Confirm button label (default: OK)
    --cancel-text <text>    Cancel button label (default: Cancel)
    -h, --help              Show this help

Prints the answer to stdout. Exits 1 when cancelled.

EXAMPLES:
    name=$(tip prompt --default "$USER" "Name?")`,
		Args: requireMessage("prompt"),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok, err := client.Prompt(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			if !ok {
				return errDeclined
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	promptCmd.Flags().StringVar(&opts.Title, "title", "", "Dialog title")
	promptCmd.Flags().StringVar(&opts.Placeholder, "placeholder", "", "Input placeholder")
	promptCmd.Flags().StringVar(&opts.DefaultValue, "default", "", "Initial input value")
	promptCmd.Flags().StringVar(&opts.ConfirmText, "confirm-text", "", "Confirm button label")
	promptCmd.Flags().StringVar(&opts.CancelText, "cancel-text", "", "Cancel button label")

	return promptCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewPromptCmd(coreClient))
}
