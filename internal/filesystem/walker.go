package filesystem

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Walker walks the filesystem and finds regular files to inventory
type Walker struct {
	excluder *Excluder
	logger   *zap.Logger
}

// NewWalker creates a new filesystem walker
func NewWalker(exclude []string, logger *zap.Logger) *Walker {
	return &Walker{
		excluder: NewExcluder(exclude),
		logger:   logger,
	}
}

// Walk recursively walks the directory tree depth-first and calls callback
// for every regular file. Excluded and hidden directories are pruned before
// they are read; the root itself is never excluded. Symbolic links below the
// root are not followed. Returning fs.SkipAll from callback stops the walk.
func (w *Walker) Walk(root string, callback func(path string) error) error {
	root = w.resolveRoot(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking
		}

		if path != root && w.excluder.ShouldSkip(path) {
			if d.IsDir() {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		return callback(path)
	})
}

// Files returns a lazy sequence of regular file paths under root. Each
// iteration starts a fresh walk.
func (w *Walker) Files(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		w.Walk(root, func(path string) error {
			if !yield(path) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// resolveRoot follows a symlinked root so its target is walked
func (w *Walker) resolveRoot(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return root
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		w.logger.Warn("Cannot resolve root symlink", zap.String("path", root), zap.Error(err))
		return root
	}
	return resolved
}
