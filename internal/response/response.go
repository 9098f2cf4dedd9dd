// Package response builds the two byte sequences the server can send.
package response

// StatusOK is written before the contents of a served file.
const StatusOK = "HTTP/1.1 200 OK\r\n\r\n"

// NotFound is the complete response for any path that cannot be served.
const NotFound = "HTTP/1.1 404 Not Found\r\n\r\n404 Not Found"

// OK returns the success response carrying content. No headers are added.
func OK(content string) []byte {
	b := make([]byte, 0, len(StatusOK)+len(content))
	b = append(b, StatusOK...)
	return append(b, content...)
}

// NotFoundBytes returns a fresh copy of NotFound.
func NotFoundBytes() []byte {
	return []byte(NotFound)
}
