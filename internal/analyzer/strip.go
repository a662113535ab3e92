package analyzer

import (
	"strings"

	"mclang-tool/internal/parser"
)

// Strip removes entries that are not player-facing from a lang document,
// keeping comments, blank lines, and separator-less lines untouched. Returns
// the rebuilt content and the number of removed entries.
func Strip(doc *parser.Document) ([]byte, int) {
	var kept []string
	removed := 0

	entryLines := make(map[int]parser.Entry, len(doc.Entries))
	for _, e := range doc.Entries {
		entryLines[e.Line] = e
	}

	for i, line := range doc.RawLines {
		entry, isEntry := entryLines[i+1]
		if !isEntry {
			kept = append(kept, line)
			continue
		}
		if HasPlayerFacingKey(entry.Key) {
			kept = append(kept, line)
			continue
		}
		removed++
	}

	return []byte(strings.Join(kept, "\n") + "\n"), removed
}
