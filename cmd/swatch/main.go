// Package main is the entry point for the swatch CLI.
package main

import (
	"os"

	"github.com/roach88/swatch/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
