/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/cristianoliveira/tip/cmd"
	"github.com/spf13/cobra"
)

type loadingClient interface {
	Loading(ctx context.Context, message string, run func(ctx context.Context) error) error
}

// commandRunner runs an external command, writing its combined output to w.
type commandRunner func(ctx context.Context, w io.Writer, name string, args ...string) error

func execRunner(ctx context.Context, w io.Writer, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Stdout = w
	c.Stderr = w
	return c.Run()
}

// NewLoadingCmd creates the loading command with explicit dependencies.
func NewLoadingCmd(client loadingClient, run commandRunner) *cobra.Command {
	if client == nil {
		panic("NewLoadingCmd: client dependency cannot be nil")
	}
	if run == nil {
		run = execRunner
	}

	var messageFlag string

	loadingCmd := &cobra.Command{
		Use:   "loading [OPTIONS] -- <command> [args...]",
		Short: "Show a loading overlay while a command runs",
		Long: `tip loading - Show a loading overlay while a command runs

USAGE:
    tip loading [OPTIONS] -- <command> [args...]

OPTIONS:
    -m, --message <text>   Overlay text (default: Loading...)
    -h, --help             Show this help

The command output is printed once it finishes. tip exits 1 when the
command fails.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("loading requires a command")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var out bytes.Buffer
			err := client.Loading(cmd.Context(), messageFlag, func(ctx context.Context) error {
				return run(ctx, &out, args[0], args[1:]...)
			})
			_, _ = io.Copy(cmd.OutOrStdout(), &out)
			if err != nil {
				return fmt.Errorf("%s: %w", strings.Join(args, " "), err)
			}
			return nil
		},
	}

	loadingCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Overlay text")

	return loadingCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewLoadingCmd(coreClient, nil))
}
