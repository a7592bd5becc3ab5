package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/restockly/restock-dashboard/internal/api/client"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Query restock predictions",
		Long: "Query the cached restock predictions served by the dashboard,\n" +
			"force refreshes, and inspect product counts.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsRefreshCmd(),
		productsTotalCmd(),
		productsRangeCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		shortRange int
		longRange  int
		futureDays string
		status     string
		urgency    string
		search     string
		sortBy     string
		sortDir    string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters",
		Long: "List restock predictions with optional urgency filter, search,\n" +
			"sorting, and pagination. Served from the dashboard cache when valid.",
		Example: `  # List the first page of active products
  rsd products list

  # Search by name or SKU, sorted by available stock
  rsd products list --search almond --sort-by availableStock --sort-dir asc

  # Critical items among drafts, custom lookback windows
  rsd products list --status DRAFT --urgency CRITICAL --short-range 14 --long-range 60`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListProducts(context.Background(), &apiclient.ListProductsParams{
				ShortRangeDays: shortRange,
				LongRangeDays:  longRange,
				FutureDays:     futureDays,
				Status:         status,
				Urgency:        urgency,
				Search:         search,
				SortBy:         sortBy,
				SortDir:        sortDir,
				Page:           page,
				PageSize:       pageSize,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			fmt.Printf("Showing %d of %d products (page %d)\n\n",
				len(resp.Products), resp.TotalFiltered, resp.Page)
			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().IntVar(&shortRange, "short-range", 0, "short lookback window in days")
	cmd.Flags().IntVar(&longRange, "long-range", 0, "long lookback window in days")
	cmd.Flags().StringVar(&futureDays, "future-days", "", "projection horizon in days")
	cmd.Flags().StringVar(&status, "status", "", "product status (ACTIVE, DRAFT)")
	cmd.Flags().StringVar(&urgency, "urgency", "", "urgency filter (LOW, MEDIUM, HIGH, CRITICAL)")
	cmd.Flags().StringVar(&search, "search", "", "substring match on name and SKU")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort column")
	cmd.Flags().StringVar(&sortDir, "sort-dir", "", "sort direction (asc, desc)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "records per page")

	return cmd
}

func productsRefreshCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "refresh",
		Short:   "Force a cache refresh",
		Example: `  rsd products refresh --status ACTIVE`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.RefreshProducts(context.Background(), status)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			fmt.Printf("Cache refreshed: %d records loaded.\n", resp.Records)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "product status (ACTIVE, DRAFT)")

	return cmd
}

func productsTotalCmd() *cobra.Command {
	var (
		statuses string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show product counts",
		Example: `  # Active product count
  rsd products total

  # Counts per status, bypassing the cache
  rsd products total --statuses ACTIVE,DRAFT --force`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetTotals(context.Background(), statuses, force)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			return printTotals(resp)
		},
	}
	cmd.Flags().StringVar(&statuses, "statuses", "", "comma-separated status list")
	cmd.Flags().BoolVar(&force, "force", false, "bypass the cached count")

	return cmd
}

func productsRangeCmd() *cobra.Command {
	var (
		startDate  string
		endDate    string
		futureDays string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show products with date-range projections",
		Long: "Fetch sales projections for a custom date range and show the\n" +
			"product list with projections merged in.",
		Example: `  rsd products range --start 2026-08-01 --end 2026-08-31`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetProductsByDateRange(
				context.Background(), startDate, endDate, futureDays, status,
			)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().StringVar(&startDate, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&futureDays, "future-days", "", "projection horizon in days")
	cmd.Flags().StringVar(&status, "status", "", "product status (ACTIVE, DRAFT)")
	cobra.CheckErr(cmd.MarkFlagRequired("start"))
	cobra.CheckErr(cmd.MarkFlagRequired("end"))

	return cmd
}
