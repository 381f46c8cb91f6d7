package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/internal/filesystem"
	"github.com/IvanShishkin/datahound/pkg/models"
	"go.uber.org/zap"
)

// writeFiles creates files (and their parent directories) under root
func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

type fakeMail struct {
	profiles []models.EmailProfile
	err      error
}

func (f fakeMail) MailProfiles() ([]models.EmailProfile, error) {
	return f.profiles, f.err
}

func newTestScanner(roots, exclude []string) *Scanner {
	cfg := &config.Config{
		Roots:       roots,
		Exclude:     exclude,
		Workers:     4,
		RootWorkers: 2,
	}
	return NewScanner(cfg, zap.NewNop(), nil)
}

// assertFileCount checks file_count against the stored results
func assertFileCount(t *testing.T, out *models.OutputData) {
	t.Helper()
	sum := len(out.Results.Email)
	for _, c := range models.Categories() {
		sum += out.Results.Count(c)
	}
	if out.Summary.FileCount != sum {
		t.Errorf("FileCount = %d, want %d", out.Summary.FileCount, sum)
	}
}

func TestScanner_NewScanner(t *testing.T) {
	cfg := &config.Config{Workers: 4}
	logger, _ := zap.NewDevelopment()
	scanner := NewScanner(cfg, logger, nil)

	if scanner == nil {
		t.Fatal("NewScanner() returned nil")
	}
	if scanner.config != cfg {
		t.Error("Scanner config not set correctly")
	}
	if scanner.logger != logger {
		t.Error("Scanner logger not set correctly")
	}
	if scanner.walker == nil {
		t.Error("Scanner walker not initialized")
	}
}

func TestScanner_Scan_MixedTree(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.csv", "b.CSV", "notes.txt", "cache/x.json", ".git/config.json", "image.png")

	out, err := newTestScanner([]string{root}, []string{"cache"}).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	expected := map[models.Category]int{
		models.CategoryCSV:   2,
		models.CategoryExcel: 0,
		models.CategoryText:  1,
		models.CategoryJSON:  0,
	}
	for c, want := range expected {
		if got := out.Results.Count(c); got != want {
			t.Errorf("results[%s] = %d, want %d", c, got, want)
		}
		if got := out.Summary.Categories[string(c)]; got != want {
			t.Errorf("summary.categories[%s] = %d, want %d", c, got, want)
		}
	}

	if out.Summary.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", out.Summary.FileCount)
	}
	assertFileCount(t, out)
}

func TestScanner_Scan_StoredCategoryMatchesClassifier(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.csv", "b.xlsx", "c.XLSB", "d.md", "e.log", "f.rtf", "g.json", "sub/h.xls", "sub/i.txt")

	out, err := newTestScanner([]string{root}, nil).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for c, files := range out.Results.Files {
		for _, f := range files {
			got, ok := models.Classify(f.Path)
			if !ok || got != c {
				t.Errorf("%s stored under %q, classifier says %q", f.Path, c, got)
			}
		}
	}
	if out.Summary.FileCount != 9 {
		t.Errorf("FileCount = %d, want 9", out.Summary.FileCount)
	}
}

func TestScanner_Scan_NothingStoredUnderExcludedFragment(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"keep/report.csv",
		"node_modules/pkg/package.json",
		"project/node_modules/deep/data.csv",
		"project/notes.md",
		"__pycache__/dump.log",
	)

	exclude := []string{"node_modules", "__pycache__"}
	out, err := newTestScanner([]string{root}, exclude).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for _, files := range out.Results.Files {
		for _, f := range files {
			for _, fragment := range exclude {
				if strings.Contains(strings.ToLower(f.Path), fragment) {
					t.Errorf("%s stored despite excluded fragment %q", f.Path, fragment)
				}
			}
		}
	}
	if out.Summary.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", out.Summary.FileCount)
	}
}

func TestScanner_Scan_MissingRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.csv")
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	scanner := newTestScanner([]string{missing, root}, nil)
	var skipped []string
	scanner.SetProgressCallback(func(phase string, current, total int, message string) {
		if phase == PhaseRootSkipped {
			skipped = append(skipped, message)
		}
	})

	out, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if out.Summary.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", out.Summary.FileCount)
	}
	if len(out.Summary.ScanDirs) != 2 {
		t.Errorf("ScanDirs = %v, want both configured roots", out.Summary.ScanDirs)
	}
	if len(skipped) != 1 || skipped[0] != missing {
		t.Errorf("skipped roots = %v, want [%s]", skipped, missing)
	}
}

func TestScanner_Scan_OnlyMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")

	out, err := newTestScanner([]string{missing}, nil).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if out.Summary.FileCount != 0 {
		t.Errorf("FileCount = %d, want 0", out.Summary.FileCount)
	}
}

func TestScanner_Scan_NoRoots(t *testing.T) {
	_, err := newTestScanner(nil, nil).Scan(context.Background())
	if !errors.Is(err, ErrNoRoots) {
		t.Errorf("Scan() error = %v, want ErrNoRoots", err)
	}
}

func TestScanner_Scan_Idempotent(t *testing.T) {
	root := t.TempDir()
	var files []string
	for _, dir := range []string{"a", "b", "c/d"} {
		for _, name := range []string{"x.csv", "y.json", "z.txt", "w.xlsx", "skip.bin"} {
			files = append(files, dir+"/"+name)
		}
	}
	writeFiles(t, root, files...)

	scanner := newTestScanner([]string{root}, nil)
	first, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	second, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for key, count := range first.Summary.Categories {
		if second.Summary.Categories[key] != count {
			t.Errorf("categories[%s] = %d then %d", key, count, second.Summary.Categories[key])
		}
	}
	if first.Summary.FileCount != 12 || second.Summary.FileCount != 12 {
		t.Errorf("FileCount = %d, %d, want 12", first.Summary.FileCount, second.Summary.FileCount)
	}
	if first.Summary.ScanID == second.Summary.ScanID {
		t.Error("ScanID reused across scans")
	}
}

func TestScanner_Scan_MultipleRoots(t *testing.T) {
	var roots []string
	for i := 0; i < 5; i++ {
		root := t.TempDir()
		writeFiles(t, root, "one.csv", "two/three.json")
		roots = append(roots, root)
	}

	scanner := newTestScanner(roots, nil)
	done := 0
	scanner.SetProgressCallback(func(phase string, current, total int, message string) {
		if phase == PhaseRootDone {
			done++
			if total != len(roots) {
				t.Errorf("progress total = %d, want %d", total, len(roots))
			}
		}
	})

	out, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if out.Results.Count(models.CategoryCSV) != 5 || out.Results.Count(models.CategoryJSON) != 5 {
		t.Errorf("csv = %d, json = %d, want 5 each",
			out.Results.Count(models.CategoryCSV), out.Results.Count(models.CategoryJSON))
	}
	if done != len(roots) {
		t.Errorf("root_done reported %d times, want %d", done, len(roots))
	}
	assertFileCount(t, out)
}

func TestScanner_Scan_FileVanishesBeforeMetadataRead(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "stable.csv", "vanishing.csv", "other.txt")
	vanishing := filepath.Join(root, "vanishing.csv")

	scanner := newTestScanner([]string{root}, nil)
	scanner.readMetadata = func(path string) (*models.FileInfo, error) {
		if path == vanishing {
			os.Remove(path)
		}
		return filesystem.ReadMetadata(path)
	}

	out, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	csv := out.Results.Files[models.CategoryCSV]
	if len(csv) != 1 || csv[0].Path != filepath.Join(root, "stable.csv") {
		t.Errorf("csv results = %v, want only stable.csv", csv)
	}
	if out.Results.Count(models.CategoryText) != 1 {
		t.Errorf("text results = %d, want 1", out.Results.Count(models.CategoryText))
	}
	if out.Summary.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", out.Summary.FileCount)
	}
}

func TestScanner_Scan_MailProfilesCounted(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.csv")

	cfg := &config.Config{Roots: []string{root}, Workers: 2, ScanEmail: true}
	mail := fakeMail{profiles: []models.EmailProfile{
		models.NewEmailProfile("Outlook"),
		models.NewEmailProfile("Work"),
	}}

	out, err := NewScanner(cfg, zap.NewNop(), mail).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if out.Summary.Categories[models.EmailKey] != 2 {
		t.Errorf("categories[email] = %d, want 2", out.Summary.Categories[models.EmailKey])
	}
	if out.Summary.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", out.Summary.FileCount)
	}
	assertFileCount(t, out)
}

func TestScanner_Scan_MailProviderFailureIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.csv")

	cfg := &config.Config{Roots: []string{root}, Workers: 2, ScanEmail: true}
	mail := fakeMail{err: errors.New("access denied")}

	out, err := NewScanner(cfg, zap.NewNop(), mail).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(out.Results.Email) != 0 || out.Summary.FileCount != 1 {
		t.Errorf("email = %d, FileCount = %d, want 0 and 1", len(out.Results.Email), out.Summary.FileCount)
	}
}

func TestScanner_Scan_MailDisabled(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Roots: []string{root}, ScanEmail: false}
	mail := fakeMail{profiles: []models.EmailProfile{models.NewEmailProfile("Outlook")}}

	out, err := NewScanner(cfg, zap.NewNop(), mail).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(out.Results.Email) != 0 {
		t.Errorf("email = %d, want 0 when disabled", len(out.Results.Email))
	}
}

func TestScanner_Scan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.csv", "b.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestScanner([]string{root}, nil).Scan(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestBuildSummary(t *testing.T) {
	results := models.NewScanResults()
	results.Add(models.CategoryExcel, models.FileInfo{Path: "/a.xlsx"})

	summary := buildSummary("id", []string{"/r"}, results, 1, 0)

	for _, key := range []string{"csv", "excel", "text", "json", "email"} {
		if _, ok := summary.Categories[key]; !ok {
			t.Errorf("categories missing key %q", key)
		}
	}
	if summary.Categories["excel"] != 1 {
		t.Errorf("categories[excel] = %d, want 1", summary.Categories["excel"])
	}
	if summary.Platform == "" || summary.Timestamp == "" {
		t.Error("platform and timestamp must be set")
	}
}
