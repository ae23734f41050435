package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is responding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clientFor(cmd).Ping(cmd.Context()); err != nil {
				return fmt.Errorf("auditstream is not responding: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "PONG")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the running server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := clientFor(cmd).Get(cmd.Context(), "/version", nil)
			version := strings.TrimSpace(string(body))
			if err != nil || version == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No version detected")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
