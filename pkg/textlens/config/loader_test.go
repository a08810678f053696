package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
)

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	defer comp.Close()

	if comp.Stoplist == nil {
		t.Error("Should have stoplist (empty)")
	}
	if comp.Tokenizer != nil {
		t.Error("Tokenizer should be nil when no kind is set")
	}
	if comp.Scorer != nil {
		t.Error("Scorer should be nil when no kind is set")
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stopwords.txt"}

	_, err := loader.Load()
	if !errors.Is(err, internalerr.ErrMissingInputFile) {
		t.Errorf("Should fail with ErrMissingInputFile, got %v", err)
	}
}

func TestLoaderRuneTokenizer(t *testing.T) {
	dir := t.TempDir()
	stopPath := filepath.Join(dir, "stopwords.txt")
	if err := os.WriteFile(stopPath, []byte("的\n了\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := Loader{StoplistPath: stopPath, Tokenizer: TokenizerRune}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Close()

	if !comp.Stoplist.IsStop("的") || !comp.Stoplist.IsStop("\n") {
		t.Error("stoplist should hold file terms plus newline")
	}
	if _, ok := comp.Tokenizer.(*ingest.RuneTokenizer); !ok {
		t.Errorf("expected rune tokenizer, got %T", comp.Tokenizer)
	}
}

func TestLoaderUnknownKinds(t *testing.T) {
	for _, l := range []Loader{{Tokenizer: "bpe"}, {Scorer: "vader"}} {
		if _, err := l.Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%+v: expected ErrInvalidConfig, got %v", l, err)
		}
	}
}

func TestLoaderLexiconScorer(t *testing.T) {
	comp, err := (&Loader{Scorer: ScorerLexicon}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := comp.Scorer.(*sentiment.LexiconScorer); !ok {
		t.Fatalf("expected lexicon scorer, got %T", comp.Scorer)
	}
	if comp.Lexicon == nil || comp.Lexicon.Len() == 0 {
		t.Error("expected the built-in lexicon")
	}
}

func TestLoaderCustomLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte("positive:\n  壮观: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	comp, err := (&Loader{Scorer: ScorerLexicon, LexiconPath: path}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Lexicon.Len() != 1 {
		t.Errorf("expected 1 term, got %d", comp.Lexicon.Len())
	}

	if _, err := (&Loader{Scorer: ScorerLexicon, LexiconPath: filepath.Join(t.TempDir(), "none.yaml")}).Load(); err == nil {
		t.Error("expected error for missing lexicon")
	}
}

func TestLoaderLLMScorer(t *testing.T) {
	comp, err := (&Loader{Scorer: ScorerLLM, LLM: LLMConfig{BaseURL: "http://x", Model: "m"}}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := comp.Scorer.(*sentiment.LLMScorer); !ok {
		t.Fatalf("expected llm scorer, got %T", comp.Scorer)
	}
}

func TestConfigLoaders(t *testing.T) {
	cfg := Default()
	fl := cfg.FrequencyLoader()
	if fl.StoplistPath != "stopwords.txt" || fl.Tokenizer != TokenizerJieba || fl.Scorer != "" {
		t.Errorf("unexpected frequency loader %+v", fl)
	}
	sl := cfg.SentimentLoader()
	if sl.Scorer != ScorerLexicon || sl.Tokenizer != "" || sl.StoplistPath != "" {
		t.Errorf("unexpected sentiment loader %+v", sl)
	}
}
