package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		urgency string
		search  string
		status  string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a CSV export",
		Long: "Download the product list as CSV. When a filter is given only\n" +
			"matching records are exported; otherwise the full list is.",
		Example: `  # Export everything to stdout
  rsd export

  # Export critical items to a file
  rsd export --urgency CRITICAL -o critical.csv`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			stream, err := c.ExportCSV(context.Background(), urgency, search, status)
			if err != nil {
				return err
			}
			defer stream.Close()

			out := os.Stdout
			if outFile != "" {
				f, err := os.Create(outFile) //nolint:gosec // output path from CLI flag
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			n, err := io.Copy(out, stream)
			if err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			if outFile != "" {
				fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", n, outFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&urgency, "urgency", "", "urgency filter (LOW, MEDIUM, HIGH, CRITICAL)")
	cmd.Flags().StringVar(&search, "search", "", "substring match on name and SKU")
	cmd.Flags().StringVar(&status, "status", "", "product status (ACTIVE, DRAFT)")
	cmd.Flags().StringVarP(&outFile, "output-file", "o", "", "write CSV to file instead of stdout")

	return cmd
}
