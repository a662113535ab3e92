package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"mclang-tool/internal/cache"
	"mclang-tool/internal/parser"
	"mclang-tool/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Decision is a reviewer's verdict on a proposed rewrite.
type Decision int

const (
	// Accept takes the proposed text as-is.
	Accept Decision = iota
	// Edit replaces the proposal with reviewer-supplied text.
	Edit
	// Reject keeps the original line.
	Reject
)

// ReviewFunc decides what happens to a proposed rewrite. The returned string
// is only used for Edit decisions. A nil ReviewFunc accepts every proposal.
type ReviewFunc func(line int, key, original, proposed string) (Decision, string)

// RewriteResult summarizes one rewrite pass over a lang file.
type RewriteResult struct {
	// Content is the rebuilt file with accepted rewrites applied.
	Content []byte
	// Changelog is a human-readable record of every proposed change.
	Changelog string
	// LinesProcessed counts all lines seen.
	LinesProcessed int
	// LinesImproved counts lines whose value changed.
	LinesImproved int
	// LinesUnchanged counts lines kept as-is.
	LinesUnchanged int
}

// Rewriter asks the model to simplify player-facing values for a target age.
type Rewriter struct {
	client  *Client
	prompts *PromptBuilder
	cache   *cache.RewriteCache
	review  ReviewFunc
}

// NewRewriter creates a Rewriter. cache may be nil to disable caching, and
// review may be nil to accept every reasonable proposal.
func NewRewriter(client *Client, rewriteCache *cache.RewriteCache, review ReviewFunc) *Rewriter {
	return &Rewriter{
		client:  client,
		prompts: NewPromptBuilder(),
		cache:   rewriteCache,
		review:  review,
	}
}

var (
	formattingCode   = regexp.MustCompile(`§[0-9a-fk-or]`)
	formattingPrefix = regexp.MustCompile(`^((?:§[0-9a-fk-or])+)`)
	printfCode       = regexp.MustCompile(`%[0-9]*\$?[sd]`)
	bareIdentifier   = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	responsePrefixes = []string{"Here is", "Here's", "The improved text is", "Improved:", "Response:"}
)

// minWordsToRewrite skips one- and two-word values; they are labels, not prose.
const minWordsToRewrite = 3

// Rewrite processes every entry of the document, proposing age-appropriate
// replacements for player-facing values.
func (rw *Rewriter) Rewrite(ctx context.Context, doc *parser.Document, targetAge int) (*RewriteResult, error) {
	result := &RewriteResult{LinesProcessed: len(doc.RawLines)}
	replacements := make(map[int]string)

	var changelog strings.Builder
	fmt.Fprintf(&changelog, "Text Improvement Changelog for Age %d\n", targetAge)
	fmt.Fprintf(&changelog, "Model: %s\n", rw.client.Model())
	fmt.Fprintf(&changelog, "Date: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	changelog.WriteString(strings.Repeat("=", 60) + "\n\n")

	entriesByLine := make(map[int]parser.Entry, len(doc.Entries))
	for _, e := range doc.Entries {
		entriesByLine[e.Line] = e
	}

	for line := 1; line <= len(doc.RawLines); line++ {
		entry, ok := entriesByLine[line]
		if !ok {
			result.LinesUnchanged++
			continue
		}

		cleanValue := rw.rewritableValue(entry.Value)
		if cleanValue == "" {
			result.LinesUnchanged++
			continue
		}

		proposed, err := rw.propose(ctx, cleanValue, targetAge)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Int("line", line).Str("text", textutil.Truncate(cleanValue, 30)).Msg("Rewrite failed, keeping original")
			result.LinesUnchanged++
			continue
		}
		if proposed == "" {
			result.LinesUnchanged++
			continue
		}

		decision, edited := Accept, ""
		if rw.review != nil {
			decision, edited = rw.review(line, entry.Key, cleanValue, proposed)
		}

		switch decision {
		case Reject:
			result.LinesUnchanged++
			fmt.Fprintf(&changelog, "[LINE %d] %s\n  ORIGINAL: %s\n  PROPOSED: %s\n  STATUS: REJECTED\n%s\n\n",
				line, entry.Key, cleanValue, proposed, strings.Repeat("-", 60))
			continue
		case Edit:
			proposed = strings.TrimSpace(edited)
			if proposed == "" {
				result.LinesUnchanged++
				continue
			}
		}

		// Carry over leading formatting codes from the original value.
		if m := formattingPrefix.FindString(entry.Value); m != "" {
			proposed = m + proposed
		}

		replacements[line] = proposed
		result.LinesImproved++
		fmt.Fprintf(&changelog, "[LINE %d] %s\n  ORIGINAL: %s\n  IMPROVED: %s\n  STATUS: %s\n%s\n\n",
			line, entry.Key, cleanValue, proposed, decisionLabel(decision), strings.Repeat("-", 60))
	}

	result.LinesUnchanged = result.LinesProcessed - result.LinesImproved

	fmt.Fprintf(&changelog, "%s\nProcessing complete.\nTotal lines: %d\nLines improved: %d\nLines unchanged: %d\n",
		strings.Repeat("=", 60), result.LinesProcessed, result.LinesImproved, result.LinesUnchanged)

	result.Content = doc.Reconstruct(replacements)
	result.Changelog = changelog.String()
	return result, nil
}

// rewritableValue strips formatting noise and reports whether the value is
// prose worth sending to the model. Returns "" for values to skip.
func (rw *Rewriter) rewritableValue(value string) string {
	if len(value) < 3 || !textutil.HasLowercaseLetter(value) {
		return ""
	}
	// Bare identifiers without spaces are technical keys.
	if !strings.Contains(value, " ") && bareIdentifier.MatchString(value) {
		return ""
	}

	clean := formattingCode.ReplaceAllString(value, "")
	clean = printfCode.ReplaceAllString(clean, "")
	if idx := strings.Index(clean, "#"); idx >= 0 {
		clean = clean[:idx]
	}
	clean = strings.TrimSpace(clean)

	if len(clean) < 3 || len(strings.Fields(clean)) < minWordsToRewrite {
		return ""
	}
	return clean
}

// propose asks the model (or the cache) for an improved version of text.
// Returns "" when the text should stay as-is.
func (rw *Rewriter) propose(ctx context.Context, text string, targetAge int) (string, error) {
	cacheKey := fmt.Sprintf("%s|%s|%d", text, rw.client.Model(), targetAge)

	if rw.cache != nil {
		if cached, ok := rw.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	prompt := rw.prompts.BuildImprovePrompt(text, targetAge, len(strings.Fields(text)))
	response, err := rw.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	proposed := cleanResponse(response)
	if proposed == "" || strings.Contains(strings.ToUpper(proposed), "KEEP_ORIGINAL") {
		return "", nil
	}

	// Reject proposals whose length drifted too far from the original.
	ratio := float64(len(proposed)) / float64(len(text))
	if ratio <= 0.3 || ratio >= 3.0 {
		return "", nil
	}

	if rw.cache != nil {
		if err := rw.cache.Set(ctx, cacheKey, proposed); err != nil {
			log.Warn().Err(err).Msg("Failed to cache rewrite")
		}
	}

	return proposed, nil
}

// cleanResponse normalizes a model completion: strips quotes, boilerplate
// prefixes, and repeated whitespace.
func cleanResponse(response string) string {
	text := strings.TrimSpace(response)
	text = strings.Trim(text, `"'`)

	for _, prefix := range responsePrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
			text = strings.TrimSpace(strings.TrimPrefix(text, ":"))
		}
	}

	return strings.Join(strings.Fields(text), " ")
}

func decisionLabel(d Decision) string {
	switch d {
	case Edit:
		return "USER EDITED"
	case Reject:
		return "REJECTED"
	default:
		return "ACCEPTED (AI)"
	}
}
