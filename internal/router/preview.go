package router

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Preview reads at most maxChars characters from the start of the file.
// Invalid UTF-8 bytes are dropped rather than failing; huge files are never
// loaded whole.
func Preview(path string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = 3000
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// Bytes-per-char worst case is 4, but previews are text, so a modest
	// over-read covers multibyte content.
	buf := make([]byte, maxChars*4)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	text := sanitizeUTF8(buf[:n])

	runes := []rune(text)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return string(runes), nil
}

func sanitizeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		data = data[size:]
	}
	return b.String()
}
