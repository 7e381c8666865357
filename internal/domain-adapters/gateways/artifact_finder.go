// Package gateways provides adapter implementations for external services and tools.
package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ArtifactFinder provides utilities for locating release artifacts
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// ListFilenames returns the sorted base names of regular files directly in dir.
// Subdirectories and symlinks to directories are skipped; nothing is opened.
func (f *ArtifactFinder) ListFilenames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("distribution directory does not exist: %s", dir)
		}
		return nil, fmt.Errorf("failed to read distribution directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || info.IsDir() {
				continue
			}
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// FindSignatures returns the base names of .asc files in dir
func (f *ArtifactFinder) FindSignatures(dir string) ([]string, error) {
	names, err := f.ListFilenames(dir)
	if err != nil {
		return nil, err
	}

	var signatures []string
	for _, name := range names {
		if strings.HasSuffix(name, ".asc") {
			signatures = append(signatures, name)
		}
	}
	return signatures, nil
}

// FindByGlob returns paths in dir matching any of the given patterns, sorted and de-duplicated
func (f *ArtifactFinder) FindByGlob(dir string, patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var matches []string

	for _, pattern := range patterns {
		found, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		for _, path := range found {
			if !seen[path] {
				seen[path] = true
				matches = append(matches, path)
			}
		}
	}
	sort.Strings(matches)

	return matches, nil
}
