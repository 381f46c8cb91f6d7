//go:build darwin || freebsd

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getCreationTime gets the birth time from FileInfo (BSD family)
func getCreationTime(_ string, info os.FileInfo) (time.Time, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, errCreationTimeUnsupported
	}
	return time.Unix(stat.Birthtimespec.Unix()), nil
}
