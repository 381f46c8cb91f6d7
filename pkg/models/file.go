package models

// UnknownTime marks a timestamp the filesystem could not provide
const UnknownTime = "unknown"

// FileInfo is the metadata recorded for a single matched file
type FileInfo struct {
	Path     string `json:"path" yaml:"path"`         // Full file path
	Size     uint64 `json:"size" yaml:"size"`         // File size in bytes
	Modified string `json:"modified" yaml:"modified"` // RFC 3339 local time or "unknown"
	Created  string `json:"created" yaml:"created"`   // RFC 3339 local time or "unknown"
}

// EmailProfile is a local mail profile. Only the name is ever populated;
// folder contents are not enumerated.
type EmailProfile struct {
	Name       string         `json:"name" yaml:"name"`
	Subfolders []EmailProfile `json:"subfolders" yaml:"subfolders"`
}

// NewEmailProfile creates a profile record with an empty subfolder list
func NewEmailProfile(name string) EmailProfile {
	return EmailProfile{
		Name:       name,
		Subfolders: []EmailProfile{},
	}
}
