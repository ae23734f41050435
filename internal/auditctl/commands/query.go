package commands

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Query stored audit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			query := url.Values{}

			for flag, param := range map[string]string{
				"user":  "user_id",
				"start": "start_date",
				"end":   "end_date",
				"order": "order",
			} {
				if v, _ := flags.GetString(flag); v != "" {
					query.Set(param, v)
				}
			}
			if limit, _ := flags.GetInt("limit"); limit > 0 {
				query.Set("limit", strconv.Itoa(limit))
			}

			body, err := clientFor(cmd).Get(cmd.Context(), "/logs", query)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().String("user", "", "only records of this user id")
	cmd.Flags().String("start", "", "inclusive start date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().String("end", "", "inclusive end date, widened to the end of its day")
	cmd.Flags().Int("limit", 0, "maximum records (server default 50)")
	cmd.Flags().String("order", "", "asc or desc")

	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print today's dashboard report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := clientFor(cmd).Get(cmd.Context(), "/report/dashboard_stats", nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the organization's directory users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := clientFor(cmd).Get(cmd.Context(), "/users", nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
}
