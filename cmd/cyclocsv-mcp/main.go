// Package main is the entry point for the cyclocsv MCP server.
package main

import (
	"os"

	"github.com/huangsam/cyclocsv/cmd"
)

func main() {
	os.Exit(cmd.Run(cmd.NewMCPCommand(), os.Args[1:], os.Stderr))
}
