package outwriter

import (
	"os"

	"github.com/huangsam/covidash/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for country and region names
// in table output based on terminal width and the number of numeric columns.
func GetMaxTableNameWidth(cfg *contract.Config, numericColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Each numeric column holds up to "999,999,999" plus borders and padding
	baseWidth := 15*numericColumns + 10

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}
