package sentiment

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

// Chatter sends one system/user exchange to a chat model.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

const llmSystemPrompt = "You rate the sentiment of a single Chinese sentence. " +
	"Reply with one number between 0 and 1, where 1 is most positive, 0 is most negative " +
	"and 0.5 is neutral. Reply with the number only."

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`)

// LLMScorer asks a chat model for the polarity of each sentence. Results
// are not guaranteed to be deterministic.
type LLMScorer struct {
	Client Chatter
}

// Score implements Scorer.
func (s *LLMScorer) Score(ctx context.Context, sentence string) (float64, error) {
	reply, err := s.Client.Chat(ctx, llmSystemPrompt, sentence)
	if err != nil {
		return 0, fmt.Errorf("llm score: %w", err)
	}
	score, err := ParseScore(reply)
	if err != nil {
		return 0, err
	}
	if err := ValidateScore(score); err != nil {
		return 0, err
	}
	return score, nil
}

// ParseScore extracts the first number from a model reply.
func ParseScore(reply string) (float64, error) {
	m := numberPattern.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("llm score: no number in reply %q", reply)
	}
	return strconv.ParseFloat(m, 64)
}
