/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"strings"

	"github.com/cristianoliveira/tip"
	"github.com/cristianoliveira/tip/cmd"
	"github.com/spf13/cobra"
)

type confirmClient interface {
	Confirm(ctx context.Context, message string, opts tip.Options) (bool, error)
}

// NewConfirmCmd creates the confirm command with explicit dependencies.
func NewConfirmCmd(client confirmClient) *cobra.Command {
	if client == nil {
		panic("NewConfirmCmd: client dependency cannot be nil")
	}

	var opts tip.Options

	confirmCmd := &cobra.Command{
		Use:   "confirm [OPTIONS] <message>",
		Short: "Ask a yes/no question",
		Long: `tip confirm - Ask a yes/no question

USAGE:
    tip confirm [OPTIONS] <message>

OPTIONS:
    --title <text>          Dialog title (default: Confirm)
    --confirm-text <text>   Confirm button label (default: OK)
    --cancel-text <text>    Cancel button label (default: Cancel)
    -h, --help              Show this help

Exits 0 when confirmed and 1 when cancelled.

EXAMPLES:
    tip confirm "Delete the build directory?" && rm -rf build`,
		Args: requireMessage("confirm"),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := client.Confirm(cmd.Context(), strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			if !confirmed {
				return errDeclined
			}
			return nil
		},
	}

	confirmCmd.Flags().StringVar(&opts.Title, "title", "", "Dialog title")
	confirmCmd.Flags().StringVar(&opts.ConfirmText, "confirm-text", "", "Confirm button label")
	confirmCmd.Flags().StringVar(&opts.CancelText, "cancel-text", "", "Cancel button label")

	return confirmCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewConfirmCmd(coreClient))
}
