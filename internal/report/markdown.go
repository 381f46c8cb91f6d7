package report

import (
	"fmt"
	"strings"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/dustin/go-humanize"
)

// generateMarkdown generates a Markdown report listing every matched file
func (g *Generator) generateMarkdown(data *models.OutputData, out *Output) ([]byte, error) {
	var sb strings.Builder
	s := data.Summary

	sb.WriteString("# File Scanner Report\n\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Scan Completed | %s |\n", s.Timestamp))
	if s.ScanID != "" {
		sb.WriteString(fmt.Sprintf("| Scan ID | `%s` |\n", s.ScanID))
	}
	sb.WriteString(fmt.Sprintf("| Platform | %s |\n", s.Platform))
	sb.WriteString(fmt.Sprintf("| Directories | %s |\n", markdownPaths(s.ScanDirs)))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(summaryDuration(s))))
	sb.WriteString(fmt.Sprintf("| **Total Files** | **%d** |\n", s.FileCount))
	if jsonPath := out.Path(config.FormatJSON); jsonPath != "" {
		sb.WriteString(fmt.Sprintf("| Full Results | `%s` |\n", jsonPath))
	}
	sb.WriteString("\n")

	// Counts
	sb.WriteString("## Files by Category\n\n")
	sb.WriteString("| Category | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, key := range orderedCategories() {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", categoryTitle(key), s.Categories[key]))
	}
	sb.WriteString("\n")

	if data.Results == nil {
		return []byte(sb.String()), nil
	}

	// Details
	for _, c := range models.Categories() {
		files := data.Results.Files[c]
		if len(files) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s Files\n\n", categoryTitle(string(c))))
		sb.WriteString("| Path | Size | Modified | Created |\n")
		sb.WriteString("|------|------|----------|---------|\n")
		for _, f := range files {
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
				escapeMarkdown(f.Path), humanize.Bytes(f.Size), f.Modified, f.Created))
		}
		sb.WriteString("\n")
	}

	if len(data.Results.Email) > 0 {
		sb.WriteString("## Email Profiles\n\n")
		for _, p := range data.Results.Email {
			sb.WriteString(fmt.Sprintf("- %s\n", escapeMarkdown(p.Name)))
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

func markdownPaths(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = "`" + escapeMarkdown(p) + "`"
	}
	return strings.Join(quoted, ", ")
}

// escapeMarkdown keeps pipes in paths from breaking table rows
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
