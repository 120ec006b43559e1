package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/huangsam/covidash/core"
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/outwriter"
	"github.com/huangsam/covidash/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
// The dataset is loaded on the first call and shared by every later call.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.DatasetManager

	loadOnce sync.Once
	dataset  []schema.Record
	loadErr  error
}

// datasetContext attaches the loaded dataset to the request context.
func (h *toolHandler) datasetContext(ctx context.Context) (context.Context, error) {
	h.loadOnce.Do(func() {
		h.dataset, h.loadErr = core.LoadDataset(ctx, h.baseCfg, h.mgr)
	})
	if h.loadErr != nil {
		return ctx, h.loadErr
	}
	return core.WithDataset(ctx, h.dataset), nil
}

// selectionArgs reads the shared selection arguments of a request.
func selectionArgs(request mcp.CallToolRequest) contract.SelectionArgs {
	return contract.SelectionArgs{
		Start:            request.GetString("start", ""),
		End:              request.GetString("end", ""),
		Region:           request.GetString("region", ""),
		Country:          request.GetString("country", ""),
		CountryPie:       request.GetString("country_pie", ""),
		CountryBar:       request.GetString("country_bar", ""),
		ContributionType: request.GetString("contribution_type", ""),
	}
}

// views validates the request arguments and recomputes the derived views.
// The returned result is non-nil when the request failed.
func (h *toolHandler) views(ctx context.Context, request mcp.CallToolRequest, contribution bool) (schema.DerivedViews, *mcp.CallToolResult) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateSelection(cfg, selectionArgs(request)); err != nil {
		return schema.DerivedViews{}, mcp.NewToolResultError(fmt.Sprintf("invalid selection parameters: %v", err))
	}
	cfg.ShowContribution = contribution

	ctx, err := h.datasetContext(ctx)
	if err != nil {
		return schema.DerivedViews{}, mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err))
	}
	views, err := core.GetDerivedViews(ctx, cfg, h.mgr)
	if err != nil {
		return schema.DerivedViews{}, mcp.NewToolResultError(fmt.Sprintf("recomputation failed: %v", err))
	}
	return views, nil
}

func jsonResult(data any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, failed := h.views(ctx, request, false)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(outwriter.NewSummaryJSON(views)), nil
}

func (h *toolHandler) handleGetPieData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, failed := h.views(ctx, request, false)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(outwriter.NewPieJSON(views.Pie)), nil
}

func (h *toolHandler) handleGetBarData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, failed := h.views(ctx, request, false)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(outwriter.NewBarJSON(views.Bar)), nil
}

func (h *toolHandler) handleGetContribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, failed := h.views(ctx, request, true)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(outwriter.NewContributionJSON(views.Contribution, views.Selection.ContributionMetric)), nil
}

func (h *toolHandler) handleGetMapData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, failed := h.views(ctx, request, false)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(outwriter.NewMapsJSON(views.Maps)), nil
}

func (h *toolHandler) handleListRegions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := h.datasetContext(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}
	return jsonResult(core.RegionSummaries(h.dataset)), nil
}
