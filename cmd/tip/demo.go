/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"

	"github.com/cristianoliveira/tip/cmd"
	"github.com/spf13/cobra"
)

type demoClient interface {
	Demo(ctx context.Context) error
}

// NewDemoCmd creates the demo command with explicit dependencies.
func NewDemoCmd(client demoClient) *cobra.Command {
	if client == nil {
		panic("NewDemoCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "demo",
		Short: "Play through toasts, dialogs and the loading overlay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.Demo(cmd.Context())
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewDemoCmd(coreClient))
}
