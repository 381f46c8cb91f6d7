package report

import (
	"fmt"
	"strings"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/dustin/go-humanize"
)

// generateText generates the human-readable summary digest
func (g *Generator) generateText(data *models.OutputData, out *Output) ([]byte, error) {
	var sb strings.Builder
	s := data.Summary

	sb.WriteString("File Scanner Summary\n")
	sb.WriteString(strings.Repeat("=", 20) + "\n\n")

	sb.WriteString(fmt.Sprintf("Scan completed: %s\n", s.Timestamp))
	if s.ScanID != "" {
		sb.WriteString(fmt.Sprintf("Scan ID: %s\n", s.ScanID))
	}
	sb.WriteString(fmt.Sprintf("Platform: %s\n", s.Platform))
	sb.WriteString(fmt.Sprintf("Directories scanned: %s\n", strings.Join(s.ScanDirs, ", ")))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", FormatDuration(summaryDuration(s))))
	sb.WriteString(fmt.Sprintf("Total files found: %d\n", s.FileCount))
	if data.Results != nil {
		sb.WriteString(fmt.Sprintf("Total size: %s\n", humanize.Bytes(data.Results.TotalSize())))
	}
	sb.WriteString("\n")

	sb.WriteString("Files by category:\n")
	for _, key := range orderedCategories() {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", key, s.Categories[key]))
	}

	if jsonPath := out.Path(config.FormatJSON); jsonPath != "" {
		sb.WriteString(fmt.Sprintf("\nFull results saved to: %s\n", jsonPath))
	}

	return []byte(sb.String()), nil
}

// categoryTitle returns a display name for a category key
func categoryTitle(key string) string {
	switch key {
	case string(models.CategoryCSV), string(models.CategoryJSON):
		return strings.ToUpper(key)
	case models.EmailKey:
		return "Email profiles"
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
