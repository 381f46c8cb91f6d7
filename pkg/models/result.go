package models

import (
	"encoding/json"
	"fmt"
)

// ScanResults holds matched files grouped by category plus mail profiles
type ScanResults struct {
	Files map[Category][]FileInfo
	Email []EmailProfile
}

// NewScanResults creates an empty result set
func NewScanResults() *ScanResults {
	return &ScanResults{
		Files: make(map[Category][]FileInfo),
		Email: []EmailProfile{},
	}
}

// Add appends a file to its category
func (r *ScanResults) Add(c Category, f FileInfo) {
	if r.Files == nil {
		r.Files = make(map[Category][]FileInfo)
	}
	r.Files[c] = append(r.Files[c], f)
}

// Count returns the number of files stored under a category
func (r *ScanResults) Count(c Category) int {
	return len(r.Files[c])
}

// Total returns the number of stored files plus mail profiles
func (r *ScanResults) Total() int {
	total := len(r.Email)
	for _, files := range r.Files {
		total += len(files)
	}
	return total
}

// TotalSize returns the summed size of all stored files
func (r *ScanResults) TotalSize() uint64 {
	var size uint64
	for _, files := range r.Files {
		for _, f := range files {
			size += f.Size
		}
	}
	return size
}

// Clone returns a deep copy of the results
func (r *ScanResults) Clone() *ScanResults {
	out := NewScanResults()
	for c, files := range r.Files {
		cp := make([]FileInfo, len(files))
		copy(cp, files)
		out.Files[c] = cp
	}
	out.Email = append(out.Email, r.Email...)
	return out
}

// asMap flattens results into one key per category, every category present
func (r *ScanResults) asMap() map[string]any {
	out := make(map[string]any, len(categoryOrder)+1)
	for _, c := range categoryOrder {
		files := r.Files[c]
		if files == nil {
			files = []FileInfo{}
		}
		out[string(c)] = files
	}
	email := r.Email
	if email == nil {
		email = []EmailProfile{}
	}
	out[EmailKey] = email
	return out
}

// MarshalJSON writes results keyed by category name
func (r ScanResults) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.asMap())
}

// MarshalYAML writes results keyed by category name
func (r ScanResults) MarshalYAML() (interface{}, error) {
	return r.asMap(), nil
}

// UnmarshalJSON reads results keyed by category name
func (r *ScanResults) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Files = make(map[Category][]FileInfo)
	r.Email = []EmailProfile{}
	for key, value := range raw {
		if key == EmailKey {
			if err := json.Unmarshal(value, &r.Email); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
			continue
		}
		c := Category(key)
		if _, known := categoryExtensions[c]; !known {
			return fmt.Errorf("unknown category: %s", key)
		}
		var files []FileInfo
		if err := json.Unmarshal(value, &files); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if len(files) > 0 {
			r.Files[c] = files
		}
	}
	return nil
}

// Summary contains the numeric overview of a completed scan
type Summary struct {
	ScanID          string         `json:"scan_id,omitempty" yaml:"scan_id,omitempty"`
	Timestamp       string         `json:"timestamp" yaml:"timestamp"`
	Platform        string         `json:"platform" yaml:"platform"`
	ScanDirs        []string       `json:"scan_dirs" yaml:"scan_dirs"`
	FileCount       int            `json:"file_count" yaml:"file_count"`
	DurationSeconds float64        `json:"duration_seconds" yaml:"duration_seconds"`
	Categories      map[string]int `json:"categories" yaml:"categories"`
}

// OutputData is the persisted artifact of a scan
type OutputData struct {
	Summary Summary      `json:"summary" yaml:"summary"`
	Results *ScanResults `json:"results" yaml:"results"`
}
