package sentiment

import (
	"context"
	"fmt"
	"math"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Classification thresholds. Scores strictly above PositiveThreshold are
// positive, strictly below NegativeThreshold negative, the closed interval
// between them neutral.
const (
	PositiveThreshold = 0.6
	NegativeThreshold = 0.4
	// NeutralLine is the reference line drawn on the bar chart.
	NeutralLine = 0.5
)

// Scorer turns one sentence into a polarity score in [0, 1], where 1 is
// most positive. Calls must not depend on each other.
type Scorer interface {
	Score(ctx context.Context, sentence string) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(ctx context.Context, sentence string) (float64, error)

// Score calls f(ctx, sentence).
func (f ScorerFunc) Score(ctx context.Context, sentence string) (float64, error) {
	return f(ctx, sentence)
}

// ValidateScore rejects NaN and values outside [0, 1].
func ValidateScore(score float64) error {
	if math.IsNaN(score) || score < 0 || score > 1 {
		return fmt.Errorf("score %v: %w", score, internalerr.ErrScoreOutOfRange)
	}
	return nil
}

// Bucket is the polarity class of a score.
type Bucket int

const (
	Positive Bucket = iota
	Neutral
	Negative
)

// Buckets lists every bucket in chart order.
var Buckets = []Bucket{Positive, Neutral, Negative}

var bucketNames = map[Bucket]string{
	Positive: "positive",
	Neutral:  "neutral",
	Negative: "negative",
}

var bucketLabels = map[Bucket]string{
	Positive: "正面",
	Neutral:  "中性",
	Negative: "负面",
}

// String returns the English name of the bucket.
func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// Label returns the chart label of the bucket.
func (b Bucket) Label() string {
	return bucketLabels[b]
}

// Classify maps a score to exactly one bucket. 0.4 and 0.6 are neutral.
func Classify(score float64) Bucket {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Distribution counts scores per bucket.
type Distribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Distribute classifies every score.
func Distribute(scores []float64) Distribution {
	var d Distribution
	for _, s := range scores {
		d.add(Classify(s))
	}
	return d
}

func (d *Distribution) add(b Bucket) {
	switch b {
	case Positive:
		d.Positive++
	case Neutral:
		d.Neutral++
	case Negative:
		d.Negative++
	}
}

// Count returns the number of scores in b.
func (d Distribution) Count(b Bucket) int {
	switch b {
	case Positive:
		return d.Positive
	case Neutral:
		return d.Neutral
	case Negative:
		return d.Negative
	default:
		return 0
	}
}

// Total returns the number of classified scores.
func (d Distribution) Total() int {
	return d.Positive + d.Neutral + d.Negative
}

// Percent returns the share of b in percent, or 0 for an empty distribution.
func (d Distribution) Percent(b Bucket) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	return 100 * float64(d.Count(b)) / float64(total)
}
