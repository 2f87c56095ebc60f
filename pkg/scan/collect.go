package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"codescope/pkg/config"
	"codescope/pkg/ignore"

	"go.uber.org/zap"
)

// CollectCandidates walks the root directory and yields the absolute paths
// of files whose name ends with one of the allowed extensions. Directories
// whose name exactly matches an ignored-directory name, or whose full path
// matches an ignore pattern, are pruned from the traversal entirely, so
// their contents never become candidates. An unreadable directory is
// skipped; it never fails the whole walk.
func CollectCandidates(root string, cfg config.Config, patterns ignore.Matcher, logger *zap.Logger) []string {
	ignoredDirs := make(map[string]bool, len(cfg.IgnoreDirectories))
	for _, d := range cfg.IgnoreDirectories {
		ignoredDirs[d] = true
	}

	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if ignoredDirs[d.Name()] || patterns.MatchesPath(path) {
				logger.Debug("Pruning ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if hasAllowedExtension(d.Name(), cfg.FileExtensions) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		// The walk callback swallows per-entry errors, so this only fires on
		// a root-level failure, which the caller has already ruled out.
		logger.Warn("Directory walk ended early", zap.Error(err))
	}

	return candidates
}

func hasAllowedExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
