package walker

import (
	"io/fs"
	"path/filepath"

	"timeline-renamer-go/internal/config"

	"github.com/sirupsen/logrus"
)

// Walker recursively enumerates candidate files under a root, honoring the
// configured ignore lists. Traversal order is directory-entry order; callers
// must not depend on anything beyond "each file visited exactly once".
type Walker struct {
	config *config.Config
	logger *logrus.Logger
}

// New returns a Walker for the given configuration.
func New(cfg *config.Config, logger *logrus.Logger) *Walker {
	return &Walker{config: cfg, logger: logger}
}

// Walk returns the absolute paths of every file under root that is not
// filtered by the ignore lists. A subdirectory that cannot be listed is
// logged and abandoned; traversal continues elsewhere.
func (w *Walker) Walk(root string) []string {
	var files []string

	limit := w.config.Security.MaxFilesPerRun

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warnf("Error accessing path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && w.config.IsIgnoredDirectory(d.Name()) {
				w.logger.Debugf("Skipping ignored directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		if w.config.IsIgnoredFile(d.Name()) {
			return nil
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		files = append(files, abs)

		if limit > 0 && len(files) >= limit {
			w.logger.Infof("Reached maximum files limit (%d), stopping discovery", limit)
			return filepath.SkipAll
		}

		return nil
	})
	if err != nil {
		w.logger.Warnf("Walk of %s ended early: %v", root, err)
	}

	return files
}
