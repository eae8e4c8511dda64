package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// compressionTransport wraps an http.RoundTripper to advertise and
// transparently decode gzip, brotli and zstd response encodings.
type compressionTransport struct {
	transport http.RoundTripper
}

// newCompressionTransport creates a new transport that handles automatic decompression
func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{transport: base}
}

// RoundTrip executes a single HTTP transaction, adding the Accept-Encoding
// header and decompressing the response body.
func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid mutating the caller's copy
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Nothing to decompress for bodyless responses (HEAD, 204, 304)
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	var reader io.ReadCloser
	switch contentEncoding(resp.Header) {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = zr.IOReadCloser()
	default:
		// Identity or unknown encoding, return response as-is
		return resp, nil
	}

	resp.Body = &decompressReadCloser{reader: reader, originalBody: resp.Body}

	// The encoding and length headers no longer describe the body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// contentEncoding returns the outermost encoding of a response, normalized to
// lowercase. The outermost encoding is the last entry of a comma-separated
// Content-Encoding header and must be removed first.
func contentEncoding(h http.Header) string {
	header := strings.TrimSpace(h.Get("Content-Encoding"))
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}

// decompressReadCloser closes both the decompressor and the original body.
type decompressReadCloser struct {
	reader       io.ReadCloser
	originalBody io.ReadCloser
}

func (d *decompressReadCloser) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decompressReadCloser) Close() error {
	readerErr := d.reader.Close()
	bodyErr := d.originalBody.Close()
	if readerErr != nil {
		return readerErr
	}
	return bodyErr
}
