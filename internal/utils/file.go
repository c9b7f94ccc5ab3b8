package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// WorkingExtensions are the file extensions admitted into the working
// image list. Matching is exact-case: ".JPG" is accepted alongside
// ".jpg", but ".PNG" is not.
var WorkingExtensions = []string{".png", ".bmp", ".jpg", ".JPG"}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// HasWorkingExtension reports whether filename ends in one of the
// given extensions (exact-case).
func HasWorkingExtension(filename string, extensions []string) bool {
	ext := filepath.Ext(filename)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListImages returns the filenames (not paths) of the image files
// directly inside dir that match extensions, sorted lexicographically
// by name. The scan is flat; subdirectories are not descended into.
func ListImages(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan image directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if HasWorkingExtension(entry.Name(), extensions) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if os.IsNotExist(err) {
		return false
	}
	return info.IsDir()
}

// MoveFile relocates src to dst. Rename is tried first; when it fails
// (typically a cross-device move) the file is copied and the source
// removed afterwards, so a failed copy leaves the source in place.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to flush destination file: %w", err)
	}
	return os.Remove(src)
}
