package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned by ResolveUnder when a path escapes its root.
var ErrOutsideRoot = errors.New("path escapes root directory")

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// AbsDir expands '~' and returns the absolute, cleaned form of dir.
func AbsDir(dir string) (string, error) {
	base, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	return abs, nil
}

// Resolve joins p onto base unless p is already absolute (or home-relative).
func Resolve(base, p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		return ExpandHome(p)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Join(base, p), nil
}

// ResolveUnder resolves p against root and fails when the result is not
// contained in root. Symlinks are followed on both sides, so a link inside
// root that points elsewhere is rejected with ErrOutsideRoot. A missing
// target wraps os.ErrNotExist.
func ResolveUnder(root, p string) (string, error) {
	absRoot, err := AbsDir(root)
	if err != nil {
		return "", err
	}
	var full string
	if filepath.IsAbs(p) {
		full = filepath.Clean(p)
	} else {
		full = filepath.Join(absRoot, p)
	}
	if !within(absRoot, full) {
		return "", fmt.Errorf("%s: %w", p, ErrOutsideRoot)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("image root: %w", err)
	}
	realFull, err := filepath.EvalSymlinks(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", p, os.ErrNotExist)
		}
		return "", err
	}
	if !within(realRoot, realFull) {
		return "", fmt.Errorf("%s: %w", p, ErrOutsideRoot)
	}
	return realFull, nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
