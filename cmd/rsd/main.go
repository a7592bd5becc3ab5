// Package main is the entry point for the rsd CLI client.
package main

import (
	"github.com/restockly/restock-dashboard/cmd/rsd/cmd"
)

func main() {
	cmd.Execute()
}
