/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/tip/cmd"
	"github.com/cristianoliveira/tip/internal/colors"
	"github.com/cristianoliveira/tip/internal/history"
	"github.com/spf13/cobra"
)

type historyClient interface {
	History(ctx context.Context, limit int) ([]history.Event, error)
	ClearHistory(ctx context.Context) (int64, error)
}

const (
	kindWidth    = 8
	outcomeWidth = 10
)

// formatEvent renders one history row.
func formatEvent(e history.Event) string {
	detail := e.Type
	if detail == "" {
		detail = e.Outcome
	}
	kind := lipgloss.NewStyle().Bold(true).Width(kindWidth).Render(string(e.Kind))
	return fmt.Sprintf("%s  %s  %-*s  %s",
		e.CreatedAt.Local().Format(time.DateTime),
		kind,
		outcomeWidth, detail,
		e.Message)
}

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client historyClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var limitFlag int

	historyCmd := &cobra.Command{
		Use:   "history [--limit N]",
		Short: "List recent toasts and dialog answers",
		Long: `tip history - List recent toasts and dialog answers

Recording is enabled with history_enabled = true in the configuration file
or TIP_HISTORY_ENABLED=true. Prompt answers are never stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := client.History(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				colors.Info("No history")
				return nil
			}
			for _, e := range events {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatEvent(e))
			}
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Number of events to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := client.ClearHistory(cmd.Context())
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Removed %d events", n))
			return nil
		},
	}
	historyCmd.AddCommand(clearCmd)

	return historyCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewHistoryCmd(coreClient))
}
