package lexical

import (
	"reflect"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "Hello there Friend", []string{"hello", "there", "friend"}},
		{"punctuation splits", "well-known, right?", []string{"well", "known", "right"}},
		{"digits are not words", "room 101 awaits", []string{"room", "awaits"}},
		{"digits split words", "abc123def", []string{"abc", "def"}},
		{"empty", "", nil},
		{"only noise", "123 !?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Syllable expectations document the heuristic's behavior on known words,
// not phonetic truth; the heuristic is deliberately approximate.
func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1},       // silent-e would take it to 0; clamped to 1
		{"hello", 2},
		{"table", 2},     // consonant-le ending adds one back
		{"smile", 1},     // 'le' after vowel 'i' gets no adjustment
		{"beautiful", 3}, // "eau" counts as one vowel group
		{"syllable", 3},
		{"utilize", 3},
		{"rhythm", 1},    // y is the only vowel
		{"strengths", 1},
		{"productivity", 5},
		{"a", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.want {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}

	t.Run("uppercase input folds", func(t *testing.T) {
		if got := Syllables("TABLE"); got != 2 {
			t.Errorf("Syllables(TABLE) = %d, want 2", got)
		}
	})

	t.Run("never below one", func(t *testing.T) {
		for _, w := range []string{"b", "tch", "me", "see"} {
			if got := Syllables(w); got < 1 {
				t.Errorf("Syllables(%q) = %d, want >= 1", w, got)
			}
		}
	})

	t.Run("empty word", func(t *testing.T) {
		if got := Syllables(""); got != 0 {
			t.Errorf("Syllables(\"\") = %d, want 0", got)
		}
	})
}
