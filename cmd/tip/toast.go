/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/tip"
	"github.com/cristianoliveira/tip/cmd"
	"github.com/spf13/cobra"
)

type toastClient interface {
	Toast(ctx context.Context, message string, typ tip.Type, d time.Duration) error
}

// seconds converts the --time flag; zero keeps the configured default.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func requireMessage(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || strings.Join(args, " ") == "" {
			return fmt.Errorf("%s requires a message", name)
		}
		return nil
	}
}

// NewToastCmd creates the toast command with explicit dependencies.
func NewToastCmd(client toastClient) *cobra.Command {
	if client == nil {
		panic("NewToastCmd: client dependency cannot be nil")
	}

	var typeFlag string
	var timeFlag float64

	toastCmd := &cobra.Command{
		Use:   "toast [OPTIONS] <message>",
		Short: "Show a toast notification",
		Long: `tip toast - Show a toast notification

USAGE:
    tip toast [OPTIONS] <message>

OPTIONS:
    -t, --type <type>   success, warning, info or error (default: info)
    --time <seconds>    How long the toast stays up (default: toast_default_seconds)
    -h, --help          Show this help

The command returns once the toast has disappeared.`,
		Args: requireMessage("toast"),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			return client.Toast(cmd.Context(), message, tip.Type(typeFlag), seconds(timeFlag))
		},
	}

	toastCmd.Flags().StringVarP(&typeFlag, "type", "t", string(tip.Info), "Toast type: success, warning, info, error")
	toastCmd.Flags().Float64Var(&timeFlag, "time", 0, "Seconds the toast stays visible")

	return toastCmd
}

// NewTypedToastCmd creates a shortcut command that shows a toast of one type.
func NewTypedToastCmd(client toastClient, typ tip.Type) *cobra.Command {
	if client == nil {
		panic("NewTypedToastCmd: client dependency cannot be nil")
	}

	var timeFlag float64
	name := string(typ)

	typedCmd := &cobra.Command{
		Use:   name + " [OPTIONS] <message>",
		Short: fmt.Sprintf("Show a %s toast", name),
		Args:  requireMessage(name),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.Toast(cmd.Context(), strings.Join(args, " "), typ, seconds(timeFlag))
		},
	}

	typedCmd.Flags().Float64Var(&timeFlag, "time", 0, "Seconds the toast stays visible")

	return typedCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewToastCmd(coreClient))
	for _, typ := range []tip.Type{tip.Success, tip.Error, tip.Info, tip.Warning} {
		cmd.RootCmd.AddCommand(NewTypedToastCmd(coreClient, typ))
	}
}
