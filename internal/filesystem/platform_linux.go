//go:build linux

package filesystem

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// getCreationTime reads the birth time via statx (Linux 4.11+). Filesystems
// that do not record it leave STATX_BTIME unset in the returned mask.
func getCreationTime(path string, _ os.FileInfo) (time.Time, error) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, err
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, errCreationTimeUnsupported
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
}
