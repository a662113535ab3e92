package parser

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("basic entries", func(t *testing.T) {
		content := "tile.stone.name=Stone\nitem.apple.name=Apple\n"
		entries, encoding, err := Parse([]byte(content))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if encoding != EncodingUTF8 {
			t.Errorf("encoding = %q, want %q", encoding, EncodingUTF8)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].Key != "tile.stone.name" || entries[0].Value != "Stone" || entries[0].Line != 1 {
			t.Errorf("entry 0 = %+v", entries[0])
		}
		if entries[1].Line != 2 {
			t.Errorf("entry 1 line = %d, want 2", entries[1].Line)
		}
	})

	t.Run("skips comments and blanks", func(t *testing.T) {
		content := "# comment\n// also a comment\n\n   \nkey=value\n"
		entries, _, err := Parse([]byte(content))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Line != 5 {
			t.Errorf("line = %d, want 5", entries[0].Line)
		}
	})

	t.Run("skips lines without separator", func(t *testing.T) {
		entries, _, err := Parse([]byte("no separator here\nkey=value\n"))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("got %d entries, want 1", len(entries))
		}
	})

	t.Run("only first equals splits", func(t *testing.T) {
		entries, _, err := Parse([]byte("menu.score=Score = %d points\n"))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Value != "Score = %d points" {
			t.Errorf("value = %q", entries[0].Value)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		entries, _, err := Parse(nil)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})
}

func TestDecodeText(t *testing.T) {
	t.Run("valid utf-8", func(t *testing.T) {
		text, encoding := DecodeText([]byte("héllo"))
		if encoding != EncodingUTF8 {
			t.Errorf("encoding = %q, want %q", encoding, EncodingUTF8)
		}
		if text != "héllo" {
			t.Errorf("text = %q", text)
		}
	})

	t.Run("invalid utf-8 falls back to latin-1", func(t *testing.T) {
		// 0xE9 is 'é' in Latin-1 but an invalid UTF-8 sequence on its own.
		data := []byte{'c', 'a', 'f', 0xE9}
		text, encoding := DecodeText(data)
		if encoding != EncodingLatin1 {
			t.Errorf("encoding = %q, want %q", encoding, EncodingLatin1)
		}
		if text != "café" {
			t.Errorf("text = %q, want café", text)
		}
	})

	t.Run("fallback never loses lines", func(t *testing.T) {
		data := []byte("key1=first\nkey2=bro\xFFken\nkey3=third\n")
		entries, encoding, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if encoding != EncodingLatin1 {
			t.Errorf("encoding = %q, want %q", encoding, EncodingLatin1)
		}
		if len(entries) != 3 {
			t.Errorf("got %d entries, want 3", len(entries))
		}
	})
}

func TestParseDocument(t *testing.T) {
	content := "# header\ntile.dirt.name=Dirt\n\nmenu.play=Play Game\n"

	doc, err := ParseDocument([]byte(content))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.RawLines) != 4 {
		t.Fatalf("got %d raw lines, want 4", len(doc.RawLines))
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(doc.Entries))
	}

	t.Run("reconstruct with replacement", func(t *testing.T) {
		out := doc.Reconstruct(map[int]string{4: "Start Game"})
		text := string(out)
		if !strings.Contains(text, "menu.play=Start Game") {
			t.Errorf("replacement missing:\n%s", text)
		}
		if !strings.Contains(text, "tile.dirt.name=Dirt") {
			t.Errorf("untouched line changed:\n%s", text)
		}
		if !strings.Contains(text, "# header") {
			t.Errorf("comment lost:\n%s", text)
		}
	})

	t.Run("reconstruct without replacements is identity", func(t *testing.T) {
		out := doc.Reconstruct(nil)
		if string(out) != content {
			t.Errorf("got:\n%q\nwant:\n%q", out, content)
		}
	})
}
