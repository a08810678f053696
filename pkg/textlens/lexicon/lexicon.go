package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Kind classifies a lexicon term.
type Kind int

const (
	// Polarity terms carry a signed weight: positive words > 0, negative < 0.
	Polarity Kind = iota
	// Negator flips the sign of the next polarity term.
	Negator
	// Intensifier multiplies the next polarity term by its weight.
	Intensifier
)

func (k Kind) String() string {
	switch k {
	case Polarity:
		return "polarity"
	case Negator:
		return "negator"
	case Intensifier:
		return "intensifier"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Term is a single lexicon entry.
type Term struct {
	Text   string
	Kind   Kind
	Weight float64
}

// Lexicon stores the sentiment vocabulary used by the lexicon scorer:
// - Polarity words with signed weights (好 → +1.0, 差 → -1.2)
// - Negators that flip the following polarity word (不, 没有)
// - Intensifiers that scale the following polarity word (很 → 1.5)
//
// Lookup is by exact surface form; Match does greedy longest matching so
// "不错" wins over the negator "不".
type Lexicon struct {
	terms  map[string]Term
	maxLen int // longest term, in runes
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{terms: make(map[string]Term)}
}

// Default returns the embedded Chinese lexicon.
func Default() *Lexicon {
	lex, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded default is invalid: %v", err))
	}
	return lex
}

// fileFormat is the YAML layout.
//
//	positive:
//	  好: 1.0
//	negative:
//	  差: 1.2
//	negators: [不, 没有]
//	intensifiers:
//	  很: 1.5
type fileFormat struct {
	Positive     map[string]float64 `yaml:"positive"`
	Negative     map[string]float64 `yaml:"negative"`
	Negators     []string           `yaml:"negators"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
}

// LoadFromYAML loads a lexicon from a YAML file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Parse builds a lexicon from YAML bytes.
func Parse(data []byte) (*Lexicon, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	lex := New()
	for w, weight := range f.Positive {
		if weight <= 0 {
			return nil, fmt.Errorf("positive term %q needs a weight > 0", w)
		}
		lex.Add(Term{Text: w, Kind: Polarity, Weight: weight})
	}
	for w, weight := range f.Negative {
		if weight <= 0 {
			return nil, fmt.Errorf("negative term %q needs a weight > 0", w)
		}
		lex.Add(Term{Text: w, Kind: Polarity, Weight: -weight})
	}
	for _, w := range f.Negators {
		lex.Add(Term{Text: w, Kind: Negator, Weight: -1})
	}
	for w, factor := range f.Intensifiers {
		if factor <= 0 {
			return nil, fmt.Errorf("intensifier %q needs a factor > 0", w)
		}
		lex.Add(Term{Text: w, Kind: Intensifier, Weight: factor})
	}
	return lex, nil
}

// Add inserts or replaces a term. Empty text is ignored.
func (l *Lexicon) Add(t Term) {
	if t.Text == "" {
		return
	}
	l.terms[t.Text] = t
	if n := len([]rune(t.Text)); n > l.maxLen {
		l.maxLen = n
	}
}

// Lookup returns the term with the exact surface form.
func (l *Lexicon) Lookup(text string) (Term, bool) {
	t, ok := l.terms[text]
	return t, ok
}

// Len returns the number of terms.
func (l *Lexicon) Len() int { return len(l.terms) }

// Terms returns all terms of the given kind, sorted by text.
func (l *Lexicon) Terms(kind Kind) []Term {
	var out []Term
	for _, t := range l.terms {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

// Match returns the longest term starting at runes[i] and its length in
// runes. ok is false when nothing matches.
func (l *Lexicon) Match(runes []rune, i int) (term Term, n int, ok bool) {
	maxPhrase := l.maxLen
	if remaining := len(runes) - i; maxPhrase > remaining {
		maxPhrase = remaining
	}
	for k := maxPhrase; k >= 1; k-- {
		if t, found := l.terms[string(runes[i:i+k])]; found {
			return t, k, true
		}
	}
	return Term{}, 0, false
}
