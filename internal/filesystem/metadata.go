package filesystem

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/IvanShishkin/datahound/pkg/models"
)

var errCreationTimeUnsupported = errors.New("creation time not supported")

// ReadMetadata stats a regular file and returns its inventory record.
// Timestamps the platform cannot provide are recorded as models.UnknownTime;
// an error is returned only when the file itself cannot be stat'ed.
func ReadMetadata(path string) (*models.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	created := models.UnknownTime
	if t, err := getCreationTime(path, info); err == nil {
		created = formatTime(t)
	}

	return &models.FileInfo{
		Path:     path,
		Size:     uint64(info.Size()),
		Modified: formatTime(info.ModTime()),
		Created:  created,
	}, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return models.UnknownTime
	}
	return t.Local().Format(time.RFC3339Nano)
}
