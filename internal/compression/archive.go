// Package compression bundles rendered icon sets into archive files.
package compression

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for archive paths whose extension does
// not map to a known format.
var ErrUnsupportedFormat = errors.New("compression: unsupported archive format")

// Encode packs files into a single archive and returns its bytes. The
// format is chosen from the name's extension: .zip, .tar.gz/.tgz or
// .tar.xz/.txz. Members are written in sorted name order with mode 0644
// and a fixed modification time, so identical inputs produce identical
// archives.
func Encode(name string, files map[string][]byte) ([]byte, error) {
	switch {
	case strings.HasSuffix(name, ".zip"):
		return encodeZip(files)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return encodeTarGz(files)
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return encodeTarXz(files)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// CreateArchive writes files into a single archive at path, creating parent
// directories as needed. The format is chosen from the path's extension as
// in Encode.
func CreateArchive(path string, files map[string][]byte) error {
	data, err := Encode(filepath.Base(path), files)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// sortedNames returns the member names in the order they are archived.
func sortedNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
