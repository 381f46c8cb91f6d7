package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanShishkin/datahound/internal/config"
	"github.com/IvanShishkin/datahound/internal/filesystem"
	"github.com/IvanShishkin/datahound/internal/platform"
	"github.com/IvanShishkin/datahound/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoRoots is returned when a scan is started without any root directory
var ErrNoRoots = errors.New("no scan roots configured")

// Progress phases reported to the progress callback
const (
	PhaseRootStarted = "root_started"
	PhaseRootSkipped = "root_skipped"
	PhaseRootDone    = "root_done"
	PhaseEmail       = "email"
)

// ProgressCallback is called to report scan progress. current and total count
// finished and configured roots.
type ProgressCallback func(phase string, current, total int, message string)

// MetadataFunc reads the metadata record of one file
type MetadataFunc func(path string) (*models.FileInfo, error)

// Scanner is the inventory engine: it walks every root, classifies and stats
// matching files on a worker pool and assembles the summary
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	walker           *filesystem.Walker
	mail             platform.MailProfileProvider
	readMetadata     MetadataFunc
	progressCallback ProgressCallback
	mu               sync.Mutex
}

// NewScanner creates a new scanner instance. mail may be nil, in which case
// no mail profiles are collected.
func NewScanner(cfg *config.Config, logger *zap.Logger, mail platform.MailProfileProvider) *Scanner {
	return &Scanner{
		config:       cfg,
		logger:       logger,
		walker:       filesystem.NewWalker(cfg.Exclude, logger),
		mail:         mail,
		readMetadata: filesystem.ReadMetadata,
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set. Roots finish
// concurrently, so calls are serialized.
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progressCallback(phase, current, total, message)
}

// rootStats counts what happened to the entries of one root
type rootStats struct {
	seen    atomic.Int64
	matched atomic.Int64
	errors  atomic.Int64
}

// Scan inventories every configured root and returns the assembled output.
// Missing roots are skipped. The only errors returned are ErrNoRoots and
// context cancellation.
func (s *Scanner) Scan(ctx context.Context) (*models.OutputData, error) {
	roots := s.config.Roots
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	start := time.Now()
	scanID := uuid.NewString()
	s.logger.Info("Starting scan",
		zap.String("scan_id", scanID),
		zap.Strings("roots", roots),
		zap.Int("workers", s.config.GetWorkers()),
		zap.Int("root_workers", s.config.GetRootWorkers()))

	// Existence is checked up front so missing roots never reach the pool
	var existing []string
	for _, root := range roots {
		if !isDir(root) {
			s.logger.Warn("Scan root does not exist, skipping", zap.String("root", root))
			s.reportProgress(PhaseRootSkipped, 0, len(roots), root)
			continue
		}
		existing = append(existing, root)
	}

	sink := NewMemorySink()
	if err := s.scanRoots(ctx, existing, len(roots), sink); err != nil {
		return nil, err
	}

	if s.config.ScanEmail && s.mail != nil {
		s.collectMailProfiles(sink)
	}

	results, count := sink.Snapshot()
	duration := time.Since(start)

	output := &models.OutputData{
		Summary: buildSummary(scanID, roots, results, count, duration),
		Results: results,
	}

	s.logger.Info("Scan completed",
		zap.String("scan_id", scanID),
		zap.Duration("duration", duration),
		zap.Int("file_count", count))

	return output, nil
}

// scanRoots runs one traversal and aggregation pipeline per root, bounded by
// the configured root concurrency
func (s *Scanner) scanRoots(ctx context.Context, roots []string, total int, sink ResultSink) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.GetRootWorkers())

	var done atomic.Int64
	for _, root := range roots {
		g.Go(func() error {
			s.reportProgress(PhaseRootStarted, int(done.Load()), total, root)
			if err := s.scanRoot(gctx, root, sink); err != nil {
				return err
			}
			s.reportProgress(PhaseRootDone, int(done.Add(1)), total, root)
			return nil
		})
	}

	return g.Wait()
}

// scanRoot walks one root and fans its files out to the worker pool
func (s *Scanner) scanRoot(ctx context.Context, root string, sink ResultSink) error {
	workers := s.config.GetWorkers()
	fileChan := make(chan string, workers*2)
	stats := &rootStats{}

	s.logger.Info("Scanning root", zap.String("root", root))

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(&wg, fileChan, sink, stats)
	}

	// Walk filesystem and send files to workers
	feedErr := s.feed(ctx, root, fileChan, stats)

	// Close channel and wait
	close(fileChan)
	wg.Wait()

	s.logger.Info("Finished root",
		zap.String("root", root),
		zap.Int64("files_seen", stats.seen.Load()),
		zap.Int64("files_matched", stats.matched.Load()),
		zap.Int64("read_errors", stats.errors.Load()))

	return feedErr
}

// feed pushes walked paths into fileChan until the walk ends or ctx is done
func (s *Scanner) feed(ctx context.Context, root string, fileChan chan<- string, stats *rootStats) error {
	for path := range s.walker.Files(root) {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fileChan <- path:
			stats.seen.Add(1)
		}
	}
	return nil
}

// worker processes files from the channel
func (s *Scanner) worker(wg *sync.WaitGroup, fileChan <-chan string, sink ResultSink, stats *rootStats) {
	defer wg.Done()

	for path := range fileChan {
		category, info, ok := s.processFile(path, stats)
		if ok {
			sink.Merge(category, *info)
			stats.matched.Add(1)
		}
	}
}

// processFile classifies a file and reads its metadata. Unrecognized
// extensions and unreadable files are dropped.
func (s *Scanner) processFile(path string, stats *rootStats) (models.Category, *models.FileInfo, bool) {
	category, ok := models.Classify(path)
	if !ok {
		return "", nil, false
	}

	info, err := s.readMetadata(path)
	if err != nil {
		stats.errors.Add(1)
		s.logger.Debug("Cannot read file metadata, skipping",
			zap.String("path", path),
			zap.Error(err))
		return "", nil, false
	}

	return category, info, true
}

// collectMailProfiles stores local mail profile names in the sink
func (s *Scanner) collectMailProfiles(sink *MemorySink) {
	profiles, err := s.mail.MailProfiles()
	if err != nil {
		s.logger.Info("Mail profiles unavailable", zap.Error(err))
		return
	}
	sink.SetEmail(profiles)
	s.reportProgress(PhaseEmail, len(profiles), len(profiles), fmt.Sprintf("Found %d mail profiles", len(profiles)))
}

// buildSummary derives the summary from the final results
func buildSummary(scanID string, roots []string, results *models.ScanResults, count int, duration time.Duration) models.Summary {
	categories := make(map[string]int)
	for _, c := range models.Categories() {
		categories[string(c)] = results.Count(c)
	}
	categories[models.EmailKey] = len(results.Email)

	return models.Summary{
		ScanID:          scanID,
		Timestamp:       time.Now().Format(time.RFC3339Nano),
		Platform:        runtime.GOOS,
		ScanDirs:        append([]string{}, roots...),
		FileCount:       count,
		DurationSeconds: duration.Seconds(),
		Categories:      categories,
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
