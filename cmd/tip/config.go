/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/tip/cmd"
	"github.com/spf13/cobra"
)

type configClient interface {
	ConfigTOML() ([]byte, error)
	ConfigPath() string
}

// NewConfigCmd creates the config command with explicit dependencies.
func NewConfigCmd(client configClient) *cobra.Command {
	if client == nil {
		panic("NewConfigCmd: client dependency cannot be nil")
	}

	var pathFlag bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `tip config - Print the effective configuration as TOML

Values come from the defaults, the configuration file and TIP_* environment
variables, in that order. Use --path to print the file location instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pathFlag {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), client.ConfigPath())
				return nil
			}
			data, err := client.ConfigTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	configCmd.Flags().BoolVar(&pathFlag, "path", false, "Print the configuration file path")

	return configCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewConfigCmd(coreClient))
}
