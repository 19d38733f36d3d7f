// Package catalog expands a path prefix into the audio files it names.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hetulpatel/catalogseed/internal/models"
)

// AudioExt is the only extension the importer picks up.
const AudioExt = ".mp3"

// Pattern returns the glob used for prefix. The prefix is taken literally, so
// "music/" scans a directory and "music/track" scans names starting with "track".
// Backslashes in the prefix are ordinary characters, not escapes.
func Pattern(prefix string) string {
	return escape(prefix, `\`) + "*" + AudioExt
}

// Scan globs prefix for audio files. No match is not an error, and a prefix
// that is not a valid pattern is matched literally instead.
func Scan(prefix string) ([]models.CatalogEntry, error) {
	pattern := Pattern(prefix)
	matches, err := filepath.Glob(pattern)
	if errors.Is(err, filepath.ErrBadPattern) {
		pattern = escape(prefix, `\*?[`) + "*" + AudioExt
		matches, err = filepath.Glob(pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	hiddenOK := strings.HasPrefix(filepath.Base(prefix+"*"), ".")
	entries := make([]models.CatalogEntry, 0, len(matches))
	for _, path := range matches {
		if !hiddenOK && strings.HasPrefix(filepath.Base(path), ".") {
			continue
		}
		// symlinks are kept even when their target is gone
		if info, err := os.Lstat(path); err == nil && info.IsDir() {
			continue
		}
		entries = append(entries, models.CatalogEntry{
			Name: EntryName(path),
			Path: path,
		})
	}
	return entries, nil
}

// escape backslash-escapes every rune of s found in meta. Windows paths use
// backslash as a separator and filepath.Match has no escapes there.
func escape(s, meta string) string {
	if runtime.GOOS == "windows" {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(meta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EntryName is the base name of path with its extension stripped.
func EntryName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
