package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	colorHeader = color.New(color.FgHiYellow, color.Bold)
	colorLabel  = color.New(color.FgHiBlack)
	colorValue  = color.New(color.FgHiWhite, color.Bold)
	colorPath   = color.New(color.FgYellow)
	colorNone   = color.New(color.FgGreen)
)

// PrintConsole prints the scan summary and the written report paths
func PrintConsole(w io.Writer, data *models.OutputData, out *Output) {
	s := data.Summary

	fmt.Fprintln(w)
	colorHeader.Fprintln(w, "SCAN COMPLETE")
	fmt.Fprintln(w)

	printField(w, "Roots:", strings.Join(s.ScanDirs, ", "))
	printField(w, "Platform:", s.Platform)
	printField(w, "Duration:", FormatDuration(summaryDuration(s)))
	printField(w, "Files:", humanize.Comma(int64(s.FileCount)))
	if data.Results != nil {
		printField(w, "Size:", humanize.Bytes(data.Results.TotalSize()))
	}
	fmt.Fprintln(w)

	if s.FileCount == 0 {
		colorNone.Fprintln(w, "  No matching files found")
		fmt.Fprintln(w)
	} else {
		for _, key := range orderedCategories() {
			colorLabel.Fprintf(w, "  %-16s", categoryTitle(key))
			colorValue.Fprintf(w, "%s\n", humanize.Comma(int64(s.Categories[key])))
		}
		fmt.Fprintln(w)
	}

	if jsonPath := out.Path(config.FormatJSON); jsonPath != "" {
		colorLabel.Fprintf(w, "  %-10s", "Report:")
		colorPath.Fprintln(w, jsonPath)
	}
	if textPath := out.Path(config.FormatText); textPath != "" {
		colorLabel.Fprintf(w, "  %-10s", "Summary:")
		colorPath.Fprintln(w, textPath)
	}
	if out != nil {
		fmt.Fprintln(w)
	}
}

func printField(w io.Writer, label, value string) {
	colorLabel.Fprintf(w, "  %-10s", label)
	fmt.Fprintln(w, value)
}
