// Package static maps requested paths onto files under a root directory.
//
// Resolution is purely textual: no cleaning, no percent-decoding and no
// protection against ".." segments.
package static

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/f4ah6o/webserver-go/internal/response"
)

// IndexFile is appended to requested paths that end in a slash.
const IndexFile = "index.html"

// ErrNotText is returned by ReadText for files that are not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Resolve joins requestedPath onto root with a single separating slash and
// appends IndexFile when requestedPath ends in "/". Only the root's own
// trailing slash is absorbed; separators inside requestedPath are kept as is,
// so "/" under "./webserver/" resolves to "./webserver//index.html".
func Resolve(root, requestedPath string) string {
	full := strings.TrimSuffix(root, "/") + "/" + requestedPath
	if strings.HasSuffix(requestedPath, "/") {
		full += IndexFile
	}
	return full
}

// ReadText reads the whole file at path and returns it as a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return string(data), nil
}

// Respond resolves requestedPath under root and builds the response for it.
// Every failure to read the file as text yields the same not-found response.
// The resolved path is returned for diagnostics.
func Respond(root, requestedPath string) (resp []byte, resolved string) {
	resolved = Resolve(root, requestedPath)
	content, err := ReadText(resolved)
	if err != nil {
		return response.NotFoundBytes(), resolved
	}
	return response.OK(content), resolved
}
