// Package platform provides the per-OS capabilities the scanner is configured
// with at startup: default scan roots, default exclusions and the local mail
// profile lookup. The scanning core only sees the interfaces.
package platform

import (
	"runtime"

	"github.com/IvanShishkin/datahound/pkg/models"
	"go.uber.org/zap"
)

// DefaultRootsProvider supplies the defaults used when the caller configures
// no roots or exclusions
type DefaultRootsProvider interface {
	DefaultRoots() []string
	DefaultExclusions() []string
}

// MailProfileProvider enumerates local mail profile names. A missing profile
// store yields an empty slice and no error.
type MailProfileProvider interface {
	MailProfiles() ([]models.EmailProfile, error)
}

// Provider bundles the capabilities of one platform
type Provider interface {
	DefaultRootsProvider
	MailProfileProvider
	Name() string
}

// commonExclusions apply on every platform
var commonExclusions = []string{
	"Windows",
	"Program Files",
	"Program Files (x86)",
	"ProgramData",
	"System Volume Information",
	"$Recycle.Bin",
	"$RECYCLE.BIN",
	"node_modules",
	"venv",
	".venv",
	"env",
	".env",
	"__pycache__",
	"AppData",
	"tmp",
	"temp",
	".git",
}

type native struct {
	logger *zap.Logger
}

// Current returns the provider for the running platform
func Current(logger *zap.Logger) Provider {
	return &native{logger: logger}
}

// Name returns the operating system name
func (n *native) Name() string {
	return runtime.GOOS
}

// DefaultRoots returns the platform's default scan roots
func (n *native) DefaultRoots() []string {
	return defaultRoots()
}

// DefaultExclusions returns the common exclusions plus platform extras
func (n *native) DefaultExclusions() []string {
	out := make([]string, 0, len(commonExclusions)+len(platformExclusions))
	out = append(out, commonExclusions...)
	return append(out, platformExclusions...)
}

// MailProfiles returns the local mail profile names
func (n *native) MailProfiles() ([]models.EmailProfile, error) {
	return readMailProfiles(n.logger)
}
