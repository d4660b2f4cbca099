// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the cyclocsv MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(version string, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"cyclocsv Complexity Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{client: client}

	// --- 1. Tool: analyze_complexity ---
	s.AddTool(mcp.NewTool("analyze_complexity",
		mcp.WithDescription("Report per-function length and cyclomatic complexity for a source file or directory."),
		mcp.WithString("path", mcp.Description("File or directory to analyze."), mcp.Required()),
		mcp.WithArray("languages", mcp.Description("Language filters (e.g. python, cpp, go). Empty means all supported."), mcp.WithStringItems()),
		mcp.WithArray("excludes", mcp.Description("Glob patterns of files to skip."), mcp.WithStringItems()),
		mcp.WithString("engine", mcp.Description("Complexity engine. Defaults to 'lizard'."), mcp.Enum("lizard", "gocyclo", "gocognit")),
		mcp.WithNumber("threads", mcp.Description("Worker count for the analyzer. Defaults to 1.")),
		mcp.WithBoolean("modified", mcp.Description("Only analyze files with uncommitted changes.")),
	), h.handleAnalyzeComplexity)

	// --- 2. Tool: generate_fixtures ---
	s.AddTool(mcp.NewTool("generate_fixtures",
		mcp.WithDescription("Generate random path,value,count CSV fixture rows."),
		mcp.WithNumber("num", mcp.Description("Number of rows to generate."), mcp.Required()),
		mcp.WithString("seed", mcp.Description("Unsigned integer seed for reproducible output.")),
	), h.handleGenerateFixtures)

	return s
}

// StartMCPServer starts the cyclocsv MCP server on stdio.
func StartMCPServer(version string, client contract.GitClient) error {
	s := NewMCPServer(version, client)
	return server.ServeStdio(s)
}
