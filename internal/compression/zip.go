package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// encodeZip packs files into a zip archive.
func encodeZip(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range sortedNames(files) {
		hdr := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		}
		hdr.SetMode(0o644)

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create zip member %s: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write zip member %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise zip archive: %w", err)
	}

	return buf.Bytes(), nil
}
