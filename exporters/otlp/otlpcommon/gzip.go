package otlpcommon

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Compress gzips body at the default compression level, for the OTLP/HTTP
// exporter's `Content-Encoding: gzip` request path (§4.8).
func Compress(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress ungzips body, the inverse of Compress.
func Decompress(body []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
