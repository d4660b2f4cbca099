package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/huangsam/cyclocsv/core"
	"github.com/huangsam/cyclocsv/internal/contract"
	"github.com/huangsam/cyclocsv/internal/engine"
	"github.com/huangsam/cyclocsv/internal/outwriter"
	"github.com/huangsam/cyclocsv/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxInlineFixtures caps the rows a single tool call may return as text.
const maxInlineFixtures = 100_000

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	client contract.GitClient
}

func (h *toolHandler) handleAnalyzeComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := &contract.ConfigRawInput{
		TargetPathStr: request.GetString("path", ""),
		Language:      request.GetStringSlice("languages", nil),
		Exclude:       request.GetStringSlice("excludes", nil),
		Engine:        request.GetString("engine", ""),
		Threads:       request.GetInt("threads", schema.DefaultThreads),
		Modified:      request.GetBool("modified", false),
	}
	cfg := &contract.Config{}
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	analyzer, err := engine.New(cfg.Engine)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if err := engine.CheckAvailable(analyzer); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get working directory: %v", err)), nil
	}
	rows, err := core.AnalyzeRows(ctx, cfg.Request(), analyzer, h.client, cwd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateFixtures(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	num, err := request.RequireInt("num")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if num < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: row count cannot be negative (received %d)", num)), nil
	}
	if num > maxInlineFixtures {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: at most %d rows per call (received %d)", maxInlineFixtures, num)), nil
	}

	fixtureCfg := &contract.FixtureConfig{Count: num}
	if s := request.GetString("seed", ""); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: invalid seed %q", s)), nil
		}
		fixtureCfg.Seeded = true
		fixtureCfg.Seed = seed
	}

	rows := core.GenerateFixtures(core.NewFixtureRand(fixtureCfg), fixtureCfg.Count)
	var buf bytes.Buffer
	if err := outwriter.EncodeFixtureRowsCSV(&buf, rows); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode fixtures: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
