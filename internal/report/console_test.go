package report

import (
	"bytes"
	"testing"

	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintConsole(t *testing.T) {
	color.NoColor = true

	out := &Output{Files: map[string]string{
		"json": "/out/scan_results_x.json",
		"txt":  "/out/summary_x.txt",
	}}

	var buf bytes.Buffer
	PrintConsole(&buf, sampleOutput(), out)

	text := buf.String()
	assert.Contains(t, text, "SCAN COMPLETE")
	assert.Contains(t, text, "/data, /missing")
	assert.Contains(t, text, "Email profiles")
	assert.Contains(t, text, "/out/scan_results_x.json")
	assert.Contains(t, text, "/out/summary_x.txt")
}

func TestPrintConsole_NoFiles(t *testing.T) {
	color.NoColor = true

	data := &models.OutputData{
		Summary: models.Summary{ScanDirs: []string{"/empty"}, Categories: map[string]int{}},
		Results: models.NewScanResults(),
	}

	var buf bytes.Buffer
	PrintConsole(&buf, data, nil)

	assert.Contains(t, buf.String(), "No matching files found")
	assert.NotContains(t, buf.String(), "Report:")
}
