package ingest

import "strings"

// SentenceDelimiter is the only sentence boundary. Question marks,
// exclamation marks and semicolons do not split.
const SentenceDelimiter = "。"

// SplitSentences splits text on the Chinese full stop and drops fragments
// that are empty or whitespace-only. The position in the returned slice is
// the sentence index.
func SplitSentences(text string) []string {
	parts := strings.Split(text, SentenceDelimiter)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}
