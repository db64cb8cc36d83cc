package compose

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var sdlExtensions = []string{".graphql", ".gql"}

// LoadDir reads every SDL file under root in lexical path order. Source names
// are slash-separated paths relative to root.
func LoadDir(root string) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !lo.Contains(sdlExtensions, strings.ToLower(filepath.Ext(d.Name()))) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", path, err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", path, err)
		}
		sources = append(sources, Source{Name: filepath.ToSlash(rel), Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	return sources, nil
}

// LoadFiles reads the given files in order. Directories are expanded with
// LoadDir.
func LoadFiles(paths ...string) ([]Source, error) {
	var sources []Source
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dir, err := LoadDir(p)
			if err != nil {
				return nil, err
			}
			sources = append(sources, dir...)
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", p, err)
		}
		sources = append(sources, Source{Name: filepath.ToSlash(p), Content: string(content)})
	}
	return sources, nil
}
