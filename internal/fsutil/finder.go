// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths in
// lexical walk order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// CollectFiles resolves every path to the files carrying the extension. A
// path naming a file is taken as-is regardless of its extension; a directory
// is walked. Duplicates are dropped, first occurrence wins. Unlike a plain
// walk, a path that does not exist is an error: a catalog the user asked for
// must be there.
func CollectFiles(paths []string, extension string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(p string) {
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		all = append(all, clean)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("path %s does not exist", path)
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := FindFilesByExtension(path, extension)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return all, nil
}
