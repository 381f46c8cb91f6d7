//go:build !linux && !darwin && !freebsd && !windows

package filesystem

import (
	"os"
	"time"
)

func getCreationTime(_ string, _ os.FileInfo) (time.Time, error) {
	return time.Time{}, errCreationTimeUnsupported
}
