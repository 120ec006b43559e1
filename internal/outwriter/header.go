package outwriter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
)

// LogDatasetHeader prints a concise, 2-line header before text output.
func LogDatasetHeader(w io.Writer, cfg *contract.Config, sel schema.Selection) {
	dataset := filepath.Base(cfg.InputPath)
	if cfg.Source == schema.StoreSource {
		dataset = fmt.Sprintf("store (%s)", cfg.StoreBackend)
	} else if dataset == "" || dataset == "." {
		dataset = "unknown"
	}

	region := sel.Region
	if region == "" {
		region = "all regions"
	}

	// Line 1: The dataset and the region being shown
	_, _ = fmt.Fprintf(w, "🦠 Dataset: %s (Region: %s)\n", dataset, region)

	// Line 2: The actual date range being shown
	_, _ = fmt.Fprintf(w, "📅 Range: %s → %s\n", schema.FormatDate(sel.Start), schema.FormatDate(sel.End))
}
