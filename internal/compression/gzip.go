// Package compression wraps gzip output for large projections written to
// disk (node-link JSON for big trees compresses well).
package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipSuffix is appended to output filenames when compression is requested
const GzipSuffix = ".gz"

// WriteGzip writes data to w gzip-compressed at the default level
func WriteGzip(w io.Writer, data []byte) error {
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// GzipBytes compresses data in memory
func GzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGzip(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
