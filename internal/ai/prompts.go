package ai

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs prompts for the rewrite and quiz features.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// shortPhraseWordLimit separates vocabulary-only prompts from full rewrites.
// Below it the model is told to simplify words without restructuring.
const shortPhraseWordLimit = 5

// BuildImprovePrompt constructs the prompt asking the model to simplify text
// for a target age. Short phrases get a vocabulary-only variant so the model
// does not pad labels into sentences.
func (pb *PromptBuilder) BuildImprovePrompt(text string, targetAge, wordCount int) string {
	if wordCount >= shortPhraseWordLimit {
		return fmt.Sprintf(`You are improving text in a Minecraft educational game for a %d-year-old player.

Original text: %q

Task: Improve this text ONLY if it contains difficult vocabulary or complex sentence structure for a %d year old.

Consider BOTH:
1. Vocabulary: Replace words that are too advanced (e.g., "utilize" -> "use", "facilitate" -> "help")
2. Sentence structure: Break up long, complex sentences into shorter, clearer ones

CRITICAL RULES:
- If text is already simple and clear for age %d: Respond with exactly "KEEP_ORIGINAL"
- If improvement needed: Provide ONLY the improved text with NO extra commentary
- Do NOT add explanations, hashtags, word counts, or meta-commentary
- Keep the improved text natural and engaging

Response (either "KEEP_ORIGINAL" or the improved text only):`, targetAge, text, targetAge, targetAge)
	}

	return fmt.Sprintf(`You are improving text in a Minecraft educational game for a %d-year-old player.

Original text: %q

Task: Check if this SHORT PHRASE contains any difficult vocabulary for a %d year old.

FOCUS: Only simplify vocabulary if words are too advanced. Do NOT expand or add words.

Examples of good changes:
- "Utilize" -> "Use"
- "Commence" -> "Start"
- "Facilitate" -> "Help"

CRITICAL RULES:
- If vocabulary is already simple for age %d: Respond with exactly "KEEP_ORIGINAL"
- If improvement needed: Provide ONLY the improved text with NO additions
- Do NOT expand short phrases into longer sentences
- Keep it concise - same length or shorter than original

Response (either "KEEP_ORIGINAL" or the improved text only):`, targetAge, text, targetAge, targetAge)
}

// BuildQuizPrompt constructs the prompt generating a 10-question multiple
// choice quiz from the game's narrative text.
func (pb *PromptBuilder) BuildQuizPrompt(narrative []string, targetAge int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are creating a 10-question multiple choice quiz for a %d-year-old student based on this educational Minecraft game narrative.\n\n", targetAge)
	sb.WriteString("GAME NARRATIVE:\n")
	sb.WriteString(strings.Join(narrative, "\n"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, `TASK: Create a quiz with exactly 10 questions that test comprehension and understanding of the game content.

IMPORTANT: The game narrative may contain technical code or placeholders - ignore these completely. Focus only on the actual story, gameplay, and educational content that a %d-year-old player would experience.

REQUIREMENTS:
1. Each question must have 4 answer choices (A, B, C, D)
2. Only ONE correct answer per question
3. Language must be appropriate for age %d - use simple, clear vocabulary
4. Questions should test understanding of: game objectives, characters, locations, concepts taught, and story events
5. Each question is worth 1 mark (total: 10 marks)
6. Include a mix of question types: recall, comprehension, and application
7. DO NOT reference technical game code or developer notation
8. Questions should be answerable by a %d-year-old who played the game

FORMAT YOUR RESPONSE EXACTLY AS FOLLOWS (no extra text):

QUIZ: [Game Name] Comprehension Quiz
Target Age: %d
Total Marks: 10 (1 mark per question)

Question 1: [Your question here]
A) [Answer option A]
B) [Answer option B]
C) [Answer option C]
D) [Answer option D]

[Continue for all 10 questions]

ANSWER KEY:
1. [Letter]
2. [Letter]
[Continue for all 10 answers]

Generate the quiz now:`, targetAge, targetAge, targetAge, targetAge)

	return sb.String()
}
