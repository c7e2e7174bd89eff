package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// readDir is replaced in tests to simulate unreadable directories
var readDir = os.ReadDir

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".html", ".js")
	Extensions []string
	// ExcludeFiles is a list of file names to skip (e.g., "index.html")
	ExcludeFiles []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
}

// ScanDirectory lists the files directly inside dir that match the provided
// options. Subdirectories are not entered. A directory that cannot be read is
// an error, never an empty result.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	entries, err := readDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	excludeFiles := make(map[string]bool)
	for _, name := range opts.ExcludeFiles {
		excludeFiles[name] = true
	}

	result := &ScanResult{Files: make([]string, 0)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		if excludeFiles[filename] {
			continue
		}

		if len(extMap) > 0 {
			ext := strings.ToLower(filepath.Ext(filename))
			if !extMap[ext] {
				continue
			}
		}

		result.Files = append(result.Files, filepath.Join(absDir, filename))
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// ListSubdirectories returns the names of the immediate subdirectories of dir,
// sorted, skipping hidden directories and the names in exclude
func ListSubdirectories(dir string, exclude []string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var dirs []string
	for _, entry := range entries {
		if skip[entry.Name()] || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// Follow symlinked pattern directories
			if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		if isDir {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
