// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// selectionOptions are the tool arguments shared by every view tool.
func selectionOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("start", mcp.Description("First date of the range, YYYY-MM-DD (defaults to the first date of the dataset).")),
		mcp.WithString("end", mcp.Description("Last date of the range, YYYY-MM-DD (defaults to the last date of the dataset).")),
		mcp.WithString("region", mcp.Description("WHO region to narrow to, or 'all' for every region.")),
		mcp.WithString("country", mcp.Description("Country for both charts. Ignored when it is not in the region.")),
	}
}

// NewMCPServer initializes and configures the covidash MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.DatasetManager) *server.MCPServer {
	s := server.NewMCPServer(
		"COVID-19 Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get the cases, deaths and recovered totals of the pie and bar selections."),
			mcp.WithString("country_pie", mcp.Description("Country of the pie selection.")),
			mcp.WithString("country_bar", mcp.Description("Country of the bar selection.")),
		}, selectionOptions()...)...,
	), h.handleGetSummary)

	// --- 2. Tool: get_pie_data ---
	s.AddTool(mcp.NewTool("get_pie_data",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get the proportions of cases, deaths and recovered for a selection."),
		}, selectionOptions()...)...,
	), h.handleGetPieData)

	// --- 3. Tool: get_bar_data ---
	s.AddTool(mcp.NewTool("get_bar_data",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get the daily cases, deaths and recovered of a selection."),
		}, selectionOptions()...)...,
	), h.handleGetBarData)

	// --- 4. Tool: get_contribution ---
	s.AddTool(mcp.NewTool("get_contribution",
		mcp.WithDescription("Get the percentage contribution of every country to a metric over a date range."),
		mcp.WithString("start", mcp.Description("First date of the range, YYYY-MM-DD.")),
		mcp.WithString("end", mcp.Description("Last date of the range, YYYY-MM-DD.")),
		mcp.WithString("contribution_type", mcp.Description("Metric to break down. Defaults to 'Cases'."), mcp.Enum("Cases", "Deaths", "Recoveries")),
	), h.handleGetContribution)

	// --- 5. Tool: get_map_data ---
	s.AddTool(mcp.NewTool("get_map_data",
		mcp.WithDescription("Get the per-country deaths, recovered and daily cases used by the maps."),
		mcp.WithString("start", mcp.Description("First date of the range, YYYY-MM-DD.")),
		mcp.WithString("end", mcp.Description("Last date of the range, YYYY-MM-DD.")),
	), h.handleGetMapData)

	// --- 6. Tool: list_regions ---
	s.AddTool(mcp.NewTool("list_regions",
		mcp.WithDescription("List the WHO regions of the dataset with their countries."),
	), h.handleListRegions)

	return s
}

// StartMCPServer starts the covidash MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.DatasetManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
