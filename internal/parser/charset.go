package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection
// and conversion to UTF-8, so HTML content in any declared encoding is safe to
// hand to goquery. If the content is already UTF-8 this is a cheap no-op
// wrapper.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	// contentType is empty so the charset is detected from the HTML itself
	return charset.NewReader(body, "")
}
