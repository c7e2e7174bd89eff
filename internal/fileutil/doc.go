// Package fileutil provides the directory listing used to discover patterns,
// test fixtures, and setup scripts.
//
// All results are sorted by name so that discovery order, and therefore test
// numbering, is stable across platforms and runs.
//
// Fixture discovery in a pattern directory:
//
//	result, err := fileutil.ScanDirectory(patternDir, fileutil.ScanOptions{
//	    Extensions:   []string{".html"},
//	    ExcludeFiles: []string{"index.html"},
//	})
//
// Pattern discovery under tests/:
//
//	patterns, err := fileutil.ListSubdirectories(testsDir, []string{"resources"})
//
// Scans never descend into subdirectories. A directory that cannot be read
// is reported as an error so that it is never mistaken for an empty one.
package fileutil
