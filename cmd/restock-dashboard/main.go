// Package main is the entry point for the restock dashboard server.
package main

import (
	"os"

	"github.com/restockly/restock-dashboard/cmd/restock-dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
