package parser

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection and conversion to UTF-8.
// Data files exported by spreadsheet tools may arrive as UTF-16 with a byte order mark,
// and remote sources may declare a legacy charset such as Shift_JIS.
//
// The charset is detected from:
// 1. Byte order marks (BOM)
// 2. The charset parameter of contentType
// 3. Heuristic detection if neither is present
//
// The decoder keeps the byte order mark as a leading U+FEFF, so it is dropped here.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	decoded, err := charset.NewReader(body, contentType)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(decoded)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br, nil
}
