package parser

import (
	"bufio"
	"fmt"
	"strings"
)

// Document holds parsed entries together with the original lines so callers
// can rewrite individual values and reconstruct the file (strip, improve).
type Document struct {
	// RawLines preserves the original file content, one element per line.
	RawLines []string
	// Entries are the key=value pairs found in RawLines.
	Entries []Entry
	// Encoding is the encoding the content was decoded with.
	Encoding string
}

// ParseDocument parses raw .lang content keeping the original lines.
func ParseDocument(data []byte) (*Document, error) {
	text, encoding := DecodeText(data)

	doc := &Document{Encoding: encoding}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		doc.RawLines = append(doc.RawLines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lang content: %w", err)
	}

	for i, line := range doc.RawLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		eqIdx := strings.Index(trimmed, "=")
		if eqIdx < 0 {
			continue
		}
		doc.Entries = append(doc.Entries, Entry{
			Key:   strings.TrimSpace(trimmed[:eqIdx]),
			Value: strings.TrimSpace(trimmed[eqIdx+1:]),
			Line:  i + 1,
		})
	}

	return doc, nil
}

// Reconstruct rebuilds the file content with replacement values applied.
// replacements maps 1-based line numbers to new values; lines not present
// are emitted unchanged.
func (d *Document) Reconstruct(replacements map[int]string) []byte {
	lines := make([]string, len(d.RawLines))
	copy(lines, d.RawLines)

	for _, e := range d.Entries {
		newValue, ok := replacements[e.Line]
		if !ok {
			continue
		}
		idx := e.Line - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		line := lines[idx]
		eqIdx := strings.Index(line, "=")
		if eqIdx < 0 {
			continue
		}
		lines[idx] = line[:eqIdx+1] + newValue
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}
