package source

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding lists the content codings the transport can undo
const acceptEncoding = "br, zstd, gzip"

type decoderFunc func(r io.Reader) (io.ReadCloser, error)

var decoders = map[string]decoderFunc{
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport wraps an http.RoundTripper to advertise and transparently
// undo brotli, zstd and gzip response encodings
type compressionTransport struct {
	transport http.RoundTripper
}

func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{transport: base}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204 and 304 responses carry no body
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decode, ok := decoders[outermostEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}

	reader, err := decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = &decompressReadCloser{
		reader:       reader,
		originalBody: resp.Body,
	}
	resp.Header.Del("Content-Encoding")
	// The decoded length is unknown
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decompressReadCloser closes both the decoder and the underlying body
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

// outermostEncoding returns the last coding of a Content-Encoding list, lowercased.
// Codings are listed in the order they were applied, so the last one is undone first.
func outermostEncoding(header string) string {
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
