package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the chisel script file extension.
const Extension = ".chl"

// ErrNoFiles is returned when discovery finds nothing to format.
var ErrNoFiles = errors.New("no chisel files found")

// Discover expands paths to the sorted list of chisel files beneath them.
// Explicit file arguments are taken as-is; directories are walked
// recursively, skipping hidden directories.
func Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); strings.HasPrefix(name, ".") && path != p {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), Extension) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	sort.Strings(files)
	return files, nil
}
