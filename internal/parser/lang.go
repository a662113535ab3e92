package parser

import (
	"bufio"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Entry is one key=value pair extracted from a .lang file.
type Entry struct {
	// Key is the translation key, e.g. "tile.stone.name".
	Key string
	// Value is everything after the first '=' on the line.
	Value string
	// Line is the 1-based line number in the source file.
	Line int
}

// Encoding names returned by DecodeText.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// DecodeText converts raw file bytes to a string. UTF-8 is tried first; if the
// bytes are not valid UTF-8 the whole input is re-decoded as Latin-1, which
// maps every byte to a rune and therefore cannot fail. Returns the decoded
// text and the encoding used.
func DecodeText(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}

	// Latin-1: each byte is the code point directly.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), EncodingLatin1
}

// Parse splits raw .lang file content into entries. Blank lines and comment
// lines (# or //) are skipped, as are lines without a separator. Only the
// first '=' splits; later ones belong to the value. Returns the entries and
// the encoding used to decode the input.
func Parse(data []byte) ([]Entry, string, error) {
	text, encoding := DecodeText(data)

	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(scanner.Text())

		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}

		eqIdx := strings.Index(trimmed, "=")
		if eqIdx < 0 {
			continue
		}

		entries = append(entries, Entry{
			Key:   strings.TrimSpace(trimmed[:eqIdx]),
			Value: strings.TrimSpace(trimmed[eqIdx+1:]),
			Line:  lineNum,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, encoding, fmt.Errorf("scan lang content: %w", err)
	}

	return entries, encoding, nil
}
