package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "quota",
		Short:   "Show upstream API quota status",
		Example: `  rsd quota`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetQuota(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("DAILY LIMIT\t%d\n", resp.DailyLimit)
			tw.writef("USED\t%d\n", resp.DailyUsed)
			tw.writef("REMAINING\t%d\n", resp.Remaining)
			tw.writef("RESETS AT\t%s\n", resp.ResetAt)
			return tw.finish()
		},
	}
}
