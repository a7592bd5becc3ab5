package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(products []domain.ProductRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("PRODUCT\tSKU\tSTOCK\tINCOMING\tSOLD/DAY (7d)\tRESTOCK\tURGENCY\n")
	for i := range products {
		p := &products[i]
		sku := "-"
		if p.SKU != nil {
			sku = *p.SKU
		}
		urgency := string(p.UrgencyLevel)
		if urgency == "" {
			urgency = "-"
		}
		tw.writef("%s\t%s\t%d\t%d\t%.2f\t%.1f\t%s\n",
			truncate(p.DisplayName, 40),
			sku,
			p.AvailableStock,
			p.IncomingStock,
			p.PerDaySoldShortRange,
			p.RecommendedAverageStock,
			urgency,
		)
	}
	return tw.finish()
}

func printTotals(total *domain.TotalCount) error {
	tw := newTabWriter(os.Stdout)
	if total.Single != nil {
		tw.writef("TOTAL\t%d\n", total.Single.Count)
		if total.Single.Precision != "" {
			tw.writef("PRECISION\t%s\n", total.Single.Precision)
		}
		return tw.finish()
	}

	tw.writef("STATUS\tCOUNT\tPRECISION\n")
	for status, count := range total.ByStatus {
		precision := count.Precision
		if precision == "" {
			precision = "-"
		}
		tw.writef("%s\t%d\t%s\n", status, count.Count, precision)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
