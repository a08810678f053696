package config

import (
	"fmt"
	"io"

	"github.com/cognicore/textlens/internal/llm"
	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
	"github.com/cognicore/textlens/pkg/textlens/stoplist"
)

// Loader loads the resource files and constructs components. Empty kinds
// leave the matching component nil, so each command builds only what it
// uses.
type Loader struct {
	StoplistPath string
	Tokenizer    string
	Stem         bool
	Jieba        ingest.JiebaOptions

	Scorer      string
	LexiconPath string
	LLM         LLMConfig
}

// Components holds all loaded components.
type Components struct {
	Stoplist  *stoplist.Set
	Tokenizer ingest.Tokenizer
	Scorer    sentiment.Scorer
	Lexicon   *lexicon.Lexicon

	closers []io.Closer
}

// Close releases native resources held by the tokenizer.
func (c *Components) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// FrequencyLoader returns the loader for the frequency command.
func (c Config) FrequencyLoader() Loader {
	return Loader{
		StoplistPath: c.Frequency.Stopwords,
		Tokenizer:    c.Frequency.Tokenizer,
		Stem:         c.Frequency.Stem,
		Jieba: ingest.JiebaOptions{
			DictPath:     c.Jieba.Dict,
			HMMPath:      c.Jieba.HMM,
			UserDictPath: c.Jieba.UserDict,
			IDFPath:      c.Jieba.IDF,
			StopWordPath: c.Jieba.StopWord,
		},
	}
}

// SentimentLoader returns the loader for the sentiment command.
func (c Config) SentimentLoader() Loader {
	return Loader{
		Scorer:      c.Sentiment.Scorer,
		LexiconPath: c.Sentiment.Lexicon,
		LLM:         c.LLM,
	}
}

// Load reads all configured files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load stoplist
	if l.StoplistPath != "" {
		set, err := stoplist.Load(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = set
	} else {
		comp.Stoplist = stoplist.NewSet(nil)
	}

	switch l.Tokenizer {
	case "":
	case TokenizerJieba:
		jt := ingest.NewJiebaTokenizer(l.Jieba)
		comp.Tokenizer = jt
		comp.closers = append(comp.closers, jt)
	case TokenizerRune:
		comp.Tokenizer = ingest.NewRuneTokenizer(l.Stem)
	default:
		return nil, fmt.Errorf("tokenizer %q: %w", l.Tokenizer, internalerr.ErrInvalidConfig)
	}

	switch l.Scorer {
	case "":
	case ScorerLexicon:
		lex := lexicon.Default()
		if l.LexiconPath != "" {
			var err error
			if lex, err = lexicon.LoadFromYAML(l.LexiconPath); err != nil {
				comp.Close()
				return nil, fmt.Errorf("load lexicon: %w", err)
			}
		}
		comp.Lexicon = lex
		comp.Scorer = sentiment.NewLexiconScorer(lex)
	case ScorerLLM:
		comp.Scorer = &sentiment.LLMScorer{Client: &llm.Client{
			BaseURL: l.LLM.BaseURL,
			APIKey:  l.LLM.APIKey,
			Model:   l.LLM.Model,
		}}
	default:
		comp.Close()
		return nil, fmt.Errorf("scorer %q: %w", l.Scorer, internalerr.ErrInvalidConfig)
	}

	return comp, nil
}
