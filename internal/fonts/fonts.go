package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// ErrNotFound is returned by Find when no font matches.
var ErrNotFound = errors.New("font not found")

// ScanDir returns the font files under dir as slash-separated paths relative to dir.
// A missing dir yields no files and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and drops spaces, dashes and underscores for fuzzy matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find resolves search to a font file. An existing path is returned as is;
// otherwise dir is scanned for a file whose relative path contains search,
// ignoring case, spaces, dashes and underscores. Among several matches a
// "Regular" face wins, then the first in walk order.
func Find(dir, search string) (string, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", ErrNotFound
	}
	if st, err := os.Stat(search); err == nil && !st.IsDir() {
		return search, nil
	}
	list, err := ScanDir(dir)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	norm := normalize(strings.TrimSuffix(search, filepath.Ext(search)))
	var matches []string
	for _, rel := range list {
		if strings.Contains(normalize(rel), norm) {
			matches = append(matches, rel)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("fonts: %w: %q in %s", ErrNotFound, search, dir)
	}
	pick := matches[0]
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m), "regular") {
			pick = m
			break
		}
	}
	return filepath.Join(dir, filepath.FromSlash(pick)), nil
}
