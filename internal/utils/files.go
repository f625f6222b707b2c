package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// GeneratedFileFilter matches files named with suffix whose first line is header
func GeneratedFileFilter(suffix, header string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() || !strings.HasSuffix(info.Name(), suffix) {
			return false
		}
		generated, err := HasHeader(path, header)
		return err == nil && generated
	}
}

// HasHeader reports whether the first line of the file at path is header
func HasHeader(path, header string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return false, sc.Err()
	}
	return strings.TrimSpace(sc.Text()) == header, nil
}

// WalkFiles walks through files in a directory tree with filtering
func WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// SplitPattern turns a directory argument into a walk root. The Go style
// suffix "/..." makes the walk recursive.
func SplitPattern(pattern string) (root string, recursive bool) {
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, "/...") {
		root = strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}
		return root, true
	}
	if pattern == "" {
		return ".", false
	}
	return pattern, false
}

// CleanDirectories removes the files matched by filter below each pattern and
// returns the removed paths. Non-recursive patterns only look at the
// directory itself. Directories that do not exist are skipped.
func CleanDirectories(patterns []string, filter FileFilter) ([]string, error) {
	var removed []string

	for _, pattern := range patterns {
		root, recursive := SplitPattern(pattern)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		dirFilter := DefaultDirectoryFilter()
		if !recursive {
			dirFilter = func(path string, info os.DirEntry) bool { return false }
		}

		files, err := WalkFiles(root, FileWalkOptions{
			FileFilter:      filter,
			DirectoryFilter: dirFilter,
			SkipErrors:      true,
		})
		if err != nil {
			return removed, fmt.Errorf("failed to walk %s: %w", root, err)
		}

		for _, file := range files {
			if err := os.Remove(file); err != nil {
				return removed, fmt.Errorf("failed to remove file %s: %w", file, err)
			}
			removed = append(removed, file)
		}
	}

	return removed, nil
}

// WriteFile writes content to path through a temporary file in the same
// directory so that readers never observe a partially written file.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
