package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

// clauseBreaks end the scope of a pending negator or intensifier.
const clauseBreaks = "，,、；;！!？?：:\n"

// negationDamping softens a negated polarity word: "不好" is less
// negative than "差".
const negationDamping = 0.8

// LexiconScorer scores a sentence from lexicon matches. It is
// deterministic and keeps no state between calls.
//
// Polarity words found by greedy longest match are summed; a preceding
// negator flips a word, a preceding intensifier scales it. The sum is
// squashed into [0, 1] with a logistic curve, so a sentence without any
// polarity word scores exactly 0.5.
type LexiconScorer struct {
	lex *lexicon.Lexicon
	// Steepness of the logistic curve. Zero means 1.
	Steepness float64
}

// NewLexiconScorer creates a scorer. A nil lexicon uses lexicon.Default().
func NewLexiconScorer(lex *lexicon.Lexicon) *LexiconScorer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &LexiconScorer{lex: lex}
}

// Score implements Scorer.
func (s *LexiconScorer) Score(ctx context.Context, sentence string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.squash(s.Raw(sentence)), nil
}

// Raw returns the unsquashed polarity sum of sentence.
func (s *LexiconScorer) Raw(sentence string) float64 {
	runes := []rune(sentence)
	var sum float64
	negate := false
	boost := 1.0

	reset := func() {
		negate = false
		boost = 1.0
	}

	for i := 0; i < len(runes); {
		term, n, ok := s.lex.Match(runes, i)
		if !ok {
			if strings.ContainsRune(clauseBreaks, runes[i]) {
				reset()
			}
			i++
			continue
		}

		switch term.Kind {
		case lexicon.Negator:
			negate = !negate
		case lexicon.Intensifier:
			boost *= term.Weight
		case lexicon.Polarity:
			v := term.Weight * boost
			if negate {
				v = -v * negationDamping
			}
			sum += v
			reset()
		}
		i += n
	}
	return sum
}

func (s *LexiconScorer) squash(raw float64) float64 {
	k := s.Steepness
	if k == 0 {
		k = 1
	}
	return 1 / (1 + math.Exp(-k*raw))
}
