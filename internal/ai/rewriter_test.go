package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"mclang-tool/internal/parser"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "You won the game", "You won the game"},
		{"surrounding quotes", `"You won the game"`, "You won the game"},
		{"boilerplate prefix", "Here is: You won the game", "You won the game"},
		{"improved prefix", "Improved: You won the game", "You won the game"},
		{"collapses whitespace", "You  won\n the game", "You won the game"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanResponse(tt.in); got != tt.want {
				t.Errorf("cleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRewritableValue(t *testing.T) {
	rw := NewRewriter(NewClient("http://unused", "m"), nil, nil)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"prose passes", "You have fallen from a high place", "You have fallen from a high place"},
		{"too short", "Hi", ""},
		{"no lowercase", "ABC DEF GHI", ""},
		{"bare identifier", "entity.zombie.name", ""},
		{"two words only", "Play now", ""},
		{"formatting codes stripped", "§aYou have §lwon the game", "You have won the game"},
		{"printf codes stripped", "You found %d shiny emeralds", "You found  shiny emeralds"},
		{"inline comment stripped", "Press the button now  #debug hint", "Press the button now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rw.rewritableValue(tt.value); got != tt.want {
				t.Errorf("rewritableValue(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func rewriteFixture(t *testing.T) *parser.Document {
	t.Helper()
	content := []byte(strings.Join([]string{
		"# story strings",
		"story.intro=§aYou awaken inside a mysterious ancient temple",
		"tile.stone.name=stone",
		"story.hint=Search the room for hidden treasure",
	}, "\n"))
	doc, err := parser.ParseDocument(content)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestRewriteAcceptsProposals(t *testing.T) {
	client := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(generateResponse{Response: "You wake up in an old temple room", Done: true})
	})

	rw := NewRewriter(client, nil, nil)
	result, err := rw.Rewrite(context.Background(), rewriteFixture(t), 8)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	if result.LinesProcessed != 4 {
		t.Errorf("LinesProcessed = %d, want 4", result.LinesProcessed)
	}
	if result.LinesImproved != 2 {
		t.Errorf("LinesImproved = %d, want 2", result.LinesImproved)
	}

	text := string(result.Content)
	if !strings.Contains(text, "story.intro=§aYou wake up in an old temple room") {
		t.Errorf("formatting prefix not carried over:\n%s", text)
	}
	if !strings.Contains(text, "tile.stone.name=stone") {
		t.Errorf("non-prose line was touched:\n%s", text)
	}
	if !strings.Contains(text, "# story strings") {
		t.Errorf("comment line lost:\n%s", text)
	}
	if !strings.Contains(result.Changelog, "ACCEPTED (AI)") {
		t.Errorf("changelog missing accept record:\n%s", result.Changelog)
	}
}

func TestRewriteReviewDecisions(t *testing.T) {
	client := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "A proposed simpler version here", Done: true})
	})

	decisions := map[string]Decision{
		"story.intro": Reject,
		"story.hint":  Edit,
	}
	review := func(line int, key, original, proposed string) (Decision, string) {
		return decisions[key], "Look around for hidden treasure"
	}

	rw := NewRewriter(client, nil, review)
	result, err := rw.Rewrite(context.Background(), rewriteFixture(t), 8)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	if result.LinesImproved != 1 {
		t.Errorf("LinesImproved = %d, want 1", result.LinesImproved)
	}
	text := string(result.Content)
	if !strings.Contains(text, "story.intro=§aYou awaken inside a mysterious ancient temple") {
		t.Errorf("rejected line changed:\n%s", text)
	}
	if !strings.Contains(text, "story.hint=Look around for hidden treasure") {
		t.Errorf("edit not applied:\n%s", text)
	}
	if !strings.Contains(result.Changelog, "REJECTED") || !strings.Contains(result.Changelog, "USER EDITED") {
		t.Errorf("changelog missing decisions:\n%s", result.Changelog)
	}
}

func TestRewriteKeepOriginalResponse(t *testing.T) {
	client := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "KEEP_ORIGINAL", Done: true})
	})

	rw := NewRewriter(client, nil, nil)
	result, err := rw.Rewrite(context.Background(), rewriteFixture(t), 8)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if result.LinesImproved != 0 {
		t.Errorf("LinesImproved = %d, want 0", result.LinesImproved)
	}
	if result.LinesUnchanged != result.LinesProcessed {
		t.Errorf("LinesUnchanged = %d, want %d", result.LinesUnchanged, result.LinesProcessed)
	}
}

func TestRewriteRejectsLengthDrift(t *testing.T) {
	client := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: strings.Repeat("very long filler text ", 30), Done: true})
	})

	rw := NewRewriter(client, nil, nil)
	result, err := rw.Rewrite(context.Background(), rewriteFixture(t), 8)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if result.LinesImproved != 0 {
		t.Errorf("LinesImproved = %d, want 0 for oversized proposals", result.LinesImproved)
	}
}
