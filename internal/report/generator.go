package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// lockFileName guards the output directory against concurrent runs
const lockFileName = ".datahound.lock"

// stampLayout is the timestamp suffix of every report file name
const stampLayout = "20060102_150405"

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		// Minutes and seconds
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	// Hours, minutes and seconds
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Output lists the files written for one scan
type Output struct {
	Dir   string
	Files map[string]string // format -> absolute path
}

// Path returns the file written for format, or "" if none
func (o *Output) Path(format string) string {
	if o == nil {
		return ""
	}
	return o.Files[format]
}

// Generator persists scan output in the configured formats
type Generator struct {
	outputDir string
	formats   []string
	logger    *zap.Logger
	now       func() time.Time
}

// NewGenerator creates a new report generator. JSON and text reports are
// always written; other configured formats are added to them.
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	formats, err := normalizeFormats(cfg.Formats)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("invalid output directory %s: %w", cfg.OutputDir, err)
	}

	return &Generator{
		outputDir: dir,
		formats:   formats,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// normalizeFormats orders formats json, txt, yaml, md, always including
// json and txt
func normalizeFormats(requested []string) ([]string, error) {
	wanted := map[string]bool{config.FormatJSON: true, config.FormatText: true}
	for _, f := range requested {
		if !config.IsValidFormat(f) {
			return nil, fmt.Errorf("unknown report format: %s", f)
		}
		wanted[f] = true
	}

	var formats []string
	for _, f := range config.ValidFormats {
		if wanted[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Generate writes every report for data into the output directory
func (g *Generator) Generate(data *models.OutputData) (*Output, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", g.outputDir, err)
	}

	lock := flock.New(filepath.Join(g.outputDir, lockFileName))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock output directory %s: %w", g.outputDir, err)
	}
	defer lock.Unlock()

	stamp := g.uniqueStamp()
	out := &Output{Dir: g.outputDir, Files: make(map[string]string)}
	for _, format := range g.formats {
		out.Files[format] = filepath.Join(g.outputDir, fileName(format, stamp))
	}

	for _, format := range g.formats {
		path := out.Files[format]
		g.logger.Info("Generating report",
			zap.String("format", format),
			zap.String("output", path))

		content, err := g.render(format, data, out)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s report: %w", format, err)
		}
		if err := atomicWrite(path, content); err != nil {
			return nil, fmt.Errorf("failed to write %s report: %w", format, err)
		}
	}

	return out, nil
}

func (g *Generator) render(format string, data *models.OutputData, out *Output) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return g.generateJSON(data)
	case config.FormatText:
		return g.generateText(data, out)
	case config.FormatYAML:
		return g.generateYAML(data)
	case config.FormatMarkdown:
		return g.generateMarkdown(data, out)
	}
	return nil, fmt.Errorf("unknown report format: %s", format)
}

// uniqueStamp returns a timestamp suffix no earlier report in the directory
// uses. Called with the directory lock held.
func (g *Generator) uniqueStamp() string {
	base := g.now().Format(stampLayout)
	stamp := base
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(g.outputDir, fileName(config.FormatJSON, stamp))); os.IsNotExist(err) {
			return stamp
		}
		stamp = fmt.Sprintf("%s_%d", base, i)
	}
}

func fileName(format, stamp string) string {
	switch format {
	case config.FormatJSON, config.FormatYAML:
		return fmt.Sprintf("scan_results_%s.%s", stamp, format)
	default:
		return fmt.Sprintf("summary_%s.%s", stamp, format)
	}
}

// summaryDuration converts the summary's float seconds back to a Duration
func summaryDuration(s models.Summary) time.Duration {
	return time.Duration(s.DurationSeconds * float64(time.Second))
}

// orderedCategories returns the summary keys in report order
func orderedCategories() []string {
	keys := make([]string, 0, 5)
	for _, c := range models.Categories() {
		keys = append(keys, string(c))
	}
	return append(keys, models.EmailKey)
}
