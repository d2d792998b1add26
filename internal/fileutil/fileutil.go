// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileutil holds the filesystem operations a migration run needs,
// expressed over afero so runs can be exercised against an in-memory tree.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Entry is one immediate child of a listed directory.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
}

// Exists reports whether path exists.
func Exists(fsys afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys afero.Fs, path string) (bool, error) {
	ok, err := afero.IsDir(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

// List returns the immediate children of dir sorted by name. It does not
// recurse.
func List(fsys afero.Fs, dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Path:  filepath.Join(dir, info.Name()),
			Name:  info.Name(),
			IsDir: info.IsDir(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ReadText reads path as UTF-8 text.
func ReadText(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText writes text to path, replacing any existing file.
func WriteText(fsys afero.Fs, path, text string) error {
	if err := afero.WriteFile(fsys, path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst. It never overwrites: if dst already exists
// the returned error satisfies os.IsExist.
func CopyFile(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// ErrNotEmpty is returned by RemoveDir when the directory still has entries.
var ErrNotEmpty = errors.New("directory not empty")

// Remove deletes a single file.
func Remove(fsys afero.Fs, path string) error {
	if err := fsys.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// RemoveDir deletes an empty directory. Backends differ on whether removing
// a populated directory fails, so emptiness is checked first.
func RemoveDir(fsys afero.Fs, dir string) error {
	entries, err := List(fsys, dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("removing %s: %w (%d entries left, first %q)", dir, ErrNotEmpty, len(entries), entries[0].Name)
	}
	return Remove(fsys, dir)
}
