package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"auditstream/internal/auditctl/client"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the auditctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "auditctl",
		Short:         "Inspect a running auditstream server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("host", client.Host(), "server host:port or URL (env AUDITSTREAM_HOST)")

	root.AddCommand(
		newPingCmd(),
		newVersionCmd(),
		newLogsCmd(),
		newReportCmd(),
		newUsersCmd(),
	)

	return root
}

func clientFor(cmd *cobra.Command) *client.Client {
	host, _ := cmd.Flags().GetString("host")
	return client.New(host)
}

// printJSON pretty prints a JSON body, falling back to the raw bytes.
func printJSON(out io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		_, err = out.Write(body)
		return err
	}
	_, err := fmt.Fprintln(out, buf.String())
	return err
}
