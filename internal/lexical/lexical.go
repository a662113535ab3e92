// Package lexical tokenizes cleaned text into words and estimates syllables.
package lexical

import "strings"

// Words extracts lowercase words from text. A word is a maximal run of ASCII
// letters; digits and punctuation separate words and are never part of one.
func Words(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			current.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			current.WriteRune(r + ('a' - 'A'))
		default:
			flush()
		}
	}
	flush()

	return words
}

// Syllables estimates the syllable count of a single word. The heuristic
// counts vowel groups, subtracts a silent trailing 'e', adds one for a
// consonant-"le" ending ("table"), and never returns less than 1. It is an
// approximation, not a phonetic lookup.
func Syllables(word string) int {
	word = strings.ToLower(word)
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") {
		count--
	}
	if strings.HasSuffix(word, "le") && len(word) > 2 && !isVowel(rune(word[len(word)-3])) {
		count++
	}

	if count < 1 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
