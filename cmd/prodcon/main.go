// Package main provides the prodcon CLI.
//
// Usage:
//
//	prodcon [run] [flags]
//	prodcon version
//
// prodcon runs a bounded-buffer producer/consumer pipeline over the items
// 1..N and prints the consumed items. Settings come from flags, PRODCON_*
// environment variables, a prodcon.yml or config.yml file, and defaults, in
// that order of precedence.
package main

import (
	"os"

	"github.com/kbukum/prodcon/cmd/prodcon/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], os.Stdout, os.Stderr))
}
