// Package textclean decides whether a lang-file value is player-facing prose
// and strips technical noise from it before readability analysis.
package textclean

import (
	"regexp"
	"strings"
)

// DefaultMinRetainRatio is the fraction of the original character length a
// cleaned value must keep to be accepted. The threshold is empirical; it is a
// field on Cleaner rather than a hard-coded constant so it can be tuned.
const DefaultMinRetainRatio = 0.30

// minWords is the minimum whitespace-separated tokens an accepted value needs.
const minWords = 2

// Rule is one ordered transformation in the cleaning chain. Order matters:
// placeholders must go before the identifier rules, and whitespace collapse
// runs last over everything the earlier rules left behind.
type Rule struct {
	Name        string
	pattern     *regexp.Regexp
	replacement string
}

// Apply runs the rule on text.
func (r Rule) Apply(text string) string {
	return r.pattern.ReplaceAllString(text, r.replacement)
}

var rules = []Rule{
	{"formatting-codes", regexp.MustCompile(`§[0-9a-fk-or]`), ""},
	{"printf-placeholders", regexp.MustCompile(`%[0-9]*\$?[sdifgx]`), ""},
	{"python-placeholders", regexp.MustCompile(`%\([^)]+\)[sd]`), ""},
	{"indexed-placeholders", regexp.MustCompile(`\{[0-9]+\}`), ""},
	{"named-placeholders", regexp.MustCompile(`\{\w+\}`), ""},
	{"newline-escapes", regexp.MustCompile(`\\n`), " "},
	{"tab-escapes", regexp.MustCompile(`\\t`), " "},
	{"markup-tags", regexp.MustCompile(`<[^>]+>`), ""},
	{"bracketed-annotations", regexp.MustCompile(`\[[^\]]*\]`), ""},
	{"urls", regexp.MustCompile(`https?://\S+`), ""},
	{"code-punctuation", regexp.MustCompile("[_{}()\\[\\]<>|\\\\/@#$%^&*+=~`]"), " "},
	{"numeric-tokens", regexp.MustCompile(`\b\d+(\.\d+)*\b`), ""},
	{"camel-case-identifiers", regexp.MustCompile(`\b[a-z]+[A-Z][a-zA-Z]*\b`), ""},
	{"snake-case-identifiers", regexp.MustCompile(`\b\w+_\w+\b`), ""},
	{"single-letters", regexp.MustCompile(`\b[a-zA-Z]\b`), ""},
	{"technical-abbreviations", regexp.MustCompile(`(?i)\b(fps|fov|gui|api|rgb|xyz|pos|vec|nbt|uuid|id)\b`), ""},
	{"whitespace-collapse", regexp.MustCompile(`\s+`), " "},
}

// Rules returns the ordered cleaning chain, mainly for per-rule tests.
func Rules() []Rule {
	return rules
}

// Cleaner strips technical noise from lang values and gates what survives.
type Cleaner struct {
	// MinRetainRatio rejects values whose cleaned form kept less than this
	// fraction of the original length. A clean fragment of a mostly-technical
	// string is not prose.
	MinRetainRatio float64
}

// New returns a Cleaner with the default retain ratio.
func New() *Cleaner {
	return &Cleaner{MinRetainRatio: DefaultMinRetainRatio}
}

// IsTechnicalValue reports whether a value is a bare technical identifier: no
// spaces, but a dot or namespace colon ("entity.zombie",
// "minecraft:stone_block_01"). Such values are rejected before cleaning is
// attempted.
func IsTechnicalValue(value string) bool {
	if strings.Contains(value, " ") {
		return false
	}
	return strings.Contains(value, ".") || strings.Contains(value, ":")
}

// Sanitize runs the full rule chain over text without the acceptance gate.
func Sanitize(text string) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return strings.TrimSpace(text)
}

// Clean strips technical noise from value. Returns the cleaned text, or ""
// when the value fails the acceptance gate (fewer than two words left, or too
// little of the original survived).
func (c *Cleaner) Clean(value string) string {
	if value == "" {
		return ""
	}

	cleaned := Sanitize(value)

	if len(strings.Fields(cleaned)) < minWords {
		return ""
	}
	if float64(len(cleaned)) < float64(len(value))*c.MinRetainRatio {
		return ""
	}
	return cleaned
}
