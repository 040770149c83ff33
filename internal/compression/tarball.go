package compression

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// archiveEpoch is the modification time stamped on every member.
var archiveEpoch = time.Unix(0, 0).UTC()

// encodeTarGz packs files into a gzip-compressed tar stream.
func encodeTarGz(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer

	gw := gzip.NewWriter(&buf)
	if err := buildTar(gw, files); err != nil {
		gw.Close()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise gzip stream: %w", err)
	}

	return buf.Bytes(), nil
}

// encodeTarXz packs files into an xz-compressed tar stream.
func encodeTarXz(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer

	xw, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	if err := buildTar(xw, files); err != nil {
		xw.Close()
		return nil, err
	}
	if err := xw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise xz stream: %w", err)
	}

	return buf.Bytes(), nil
}

// buildTar writes files into w as a tar stream in sorted name order.
func buildTar(w io.Writer, files map[string][]byte) error {
	tw := tar.NewWriter(w)

	for _, name := range sortedNames(files) {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(files[name])),
			ModTime:  archiveEpoch,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", name, err)
		}
		if _, err := tw.Write(files[name]); err != nil {
			return fmt.Errorf("failed to write tar data for %s: %w", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalise tar stream: %w", err)
	}
	return nil
}
