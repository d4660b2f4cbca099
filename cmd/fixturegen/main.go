// Package main is the entry point for the fixturegen CLI.
package main

import (
	"os"

	"github.com/huangsam/cyclocsv/cmd"
)

func main() {
	os.Exit(cmd.Run(cmd.NewFixtureCommand(), os.Args[1:], os.Stderr))
}
