package cmd

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// resolveFiles expands a file-or-glob argument into a sorted list of
// existing file paths. A plain path that names an existing file is
// returned as a single-element slice without glob interpretation.
func resolveFiles(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	return matches, nil
}
