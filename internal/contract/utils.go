package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/covidash/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color variables for console output.
var (
	CasesColor     = color.New(color.FgCyan, color.Bold)  // CasesColor follows the light blue of the cases series.
	DeathsColor    = color.New(color.FgRed, color.Bold)   // DeathsColor follows the salmon of the deaths series.
	RecoveredColor = color.New(color.FgGreen, color.Bold) // RecoveredColor follows the mint of the recovered series.
	HeaderColor    = color.New(color.FgYellow)
)

// countPrinter formats counts with thousands separators.
var countPrinter = message.NewPrinter(language.English)

// GetPlainLabel returns the display label of a metric. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(m schema.Metric) string {
	return m.Label()
}

// GetColorLabel returns a colored metric label for console output (table).
// Unknown metrics get the plain label without color.
func GetColorLabel(m schema.Metric) string {
	text := GetPlainLabel(m)

	switch m {
	case schema.CasesMetric:
		return CasesColor.Sprint(text)
	case schema.DeathsMetric:
		return DeathsColor.Sprint(text)
	case schema.RecoveredMetric:
		return RecoveredColor.Sprint(text)
	default:
		return text
	}
}

// FormatCount formats a count with thousands separators (1234567 -> "1,234,567").
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is set.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the dataset store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".covidash.db"
	}
	return filepath.Join(homeDir, ".covidash.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
