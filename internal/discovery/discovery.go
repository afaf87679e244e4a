// Package discovery picks the newest extract in a folder by the date stamp
// its producer writes into the file name.
package discovery

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"shipvoid-backend/internal/timeutil"

	"github.com/spf13/afero"
)

// Matches "MM-DD-YYYY_HHMM", e.g. "Shipvoid Forecast 01-30-2025_0600.xlsm"
var fileStamp = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})_(\d{4})`)

// Finder searches one file system. The OS file system is used in production
// and an in-memory one in tests.
type Finder struct {
	fs afero.Fs
}

// NewFinder creates a finder over fs
func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Fs returns the underlying file system
func (f *Finder) Fs() afero.Fs {
	return f.fs
}

// FileDateKey returns a sortable "YYYYMMDD_HHMM" key for path, taken from
// the name when it carries a stamp and from the modification time otherwise.
func (f *Finder) FileDateKey(path string) (string, error) {
	if m := fileStamp.FindStringSubmatch(filepath.Base(path)); m != nil {
		month, day, year, hhmm := m[1], m[2], m[3], m[4]
		return year + month + day + "_" + hhmm, nil
	}
	info, err := f.fs.Stat(path)
	if err != nil {
		return "", err
	}
	return info.ModTime().In(timeutil.Location).Format(timeutil.FileStampLayout), nil
}

// NewestFile returns the newest file in dir matching pattern, or "" when
// nothing matches. A dir that is itself a matching file is returned as is.
func (f *Finder) NewestFile(dir, pattern string) (string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if info, err := f.fs.Stat(dir); err == nil && !info.IsDir() {
		if ok, _ := filepath.Match(pattern, filepath.Base(dir)); ok {
			return dir, nil
		}
		return "", nil
	}

	matches, err := afero.Glob(f.fs, filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	type candidate struct {
		path string
		key  string
	}
	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		info, err := f.fs.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		key, err := f.FileDateKey(m)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{path: m, key: key})
	}
	if len(candidates) == 0 {
		return "", nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].key != candidates[j].key {
			return candidates[i].key > candidates[j].key
		}
		return candidates[i].path > candidates[j].path
	})
	return candidates[0].path, nil
}

// FindFirst tries each pattern in order and returns the newest match of the
// first pattern that matches anything.
func (f *Finder) FindFirst(dir string, patterns ...string) (string, error) {
	for _, p := range patterns {
		found, err := f.NewestFile(dir, p)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}
	return "", nil
}
