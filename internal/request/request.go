// Package request reads and interprets the raw bytes a client sends.
//
// Only the first 1024 bytes of a connection are ever looked at, and only the
// path between the first two spaces of that text is extracted. Headers, method
// and protocol version are ignored.
package request

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// BufferSize is the fixed number of bytes read from each connection.
const BufferSize = 1024

// Read performs exactly one read from r into a zeroed BufferSize buffer and
// returns the whole buffer, including the zero tail that was not filled.
// Bytes beyond BufferSize stay unread. A read that reports io.EOF is treated
// as a short (possibly empty) request rather than an error.
func Read(r io.Reader) ([]byte, error) {
	buf := make([]byte, BufferSize)
	if _, err := r.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf, nil
}

// Decode converts buf to text, replacing invalid UTF-8 sequences with U+FFFD.
func Decode(buf []byte) string {
	// The UTF-8 decoder substitutes ill-formed input and never reports an error.
	out, _ := unicode.UTF8.NewDecoder().Bytes(buf)
	return string(out)
}

// Path extracts the requested path: the text after the first space up to the
// next space, or to the end of text when there is no second space. When text
// has no space at all the path starts at index 0.
func Path(text string) string {
	start := 0
	if i := strings.IndexByte(text, ' '); i >= 0 {
		start = i + 1
	}

	rest := text[start:]
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		return rest[:end]
	}
	return rest
}
