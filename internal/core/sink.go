package core

import (
	"sync"

	"github.com/IvanShishkin/datahound/pkg/models"
)

// ResultSink receives classified file records from scan workers.
// Merge must be safe for concurrent use.
type ResultSink interface {
	Merge(category models.Category, info models.FileInfo)
}

// MemorySink accumulates results in memory behind a single mutex. The lock
// covers one append and one counter increment and is never held across I/O.
type MemorySink struct {
	mu      sync.Mutex
	results *models.ScanResults
	count   int
}

// NewMemorySink creates an empty sink
func NewMemorySink() *MemorySink {
	return &MemorySink{results: models.NewScanResults()}
}

// Merge stores one file record and counts it
func (s *MemorySink) Merge(category models.Category, info models.FileInfo) {
	s.mu.Lock()
	s.results.Add(category, info)
	s.count++
	s.mu.Unlock()
}

// SetEmail replaces the mail profiles; each profile counts as one entry
func (s *MemorySink) SetEmail(profiles []models.EmailProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count -= len(s.results.Email)
	s.results.Email = append([]models.EmailProfile{}, profiles...)
	s.count += len(s.results.Email)
}

// Count returns the number of merged entries
func (s *MemorySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Snapshot returns a copy of the accumulated results and the entry count
func (s *MemorySink) Snapshot() (*models.ScanResults, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Clone(), s.count
}
