package ingest

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Tokenizer produces the token stream for a text. Implementations must not
// drop or filter tokens; stopword and length filtering belongs to the
// frequency counter.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

// Tokenize calls f(text).
func (f TokenizerFunc) Tokenize(text string) []string { return f(text) }

// RuneTokenizer splits text on rune classes. It needs no dictionary, which
// makes it the deterministic fallback when jieba is not wanted.
//
// Letters, digits and hyphens form words. A change between Han and
// non-Han script also ends a word, so "鸟巢Nest" yields "鸟巢" and "nest".
// Han runs are emitted whole since there is no segmentation model here.
type RuneTokenizer struct {
	// Stem reduces Latin words to their English snowball stem.
	Stem bool
}

// NewRuneTokenizer creates a rune-class tokenizer.
func NewRuneTokenizer(stem bool) *RuneTokenizer {
	return &RuneTokenizer{Stem: stem}
}

// Tokenize splits text into normalized tokens.
func (t *RuneTokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	currentHan := false

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' {
			flush()
			continue
		}
		han := unicode.Is(unicode.Han, r)
		if current.Len() > 0 && han != currentHan {
			flush()
		}
		currentHan = han
		current.WriteRune(unicode.ToLower(r))
	}
	flush()

	return tokens
}

// processToken cleans hyphens and applies stemming to Latin words.
func (t *RuneTokenizer) processToken(token string) string {
	word := cleanToken(token)
	if word == "" {
		return ""
	}
	if t.Stem && isLatin(word) {
		word = english.Stem(word, true)
	}
	return word
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}
