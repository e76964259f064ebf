// Package main is the entry point for the agency-billing CLI.
package main

import (
	"os"

	"github.com/mkojima-works/agency-billing/cmd/agency-billing/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
