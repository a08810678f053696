package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/render"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

// Sentiment scores every sentence of a source file and charts the result.
type Sentiment struct {
	Scorer   sentiment.Scorer
	Renderer render.ChartRenderer // nil skips both charts
	History  store.Store
	Out      io.Writer
	Logger   *slog.Logger

	SourcePath string
	BarPath    string
	PiePath    string
}

// SentimentResult holds the scored sentences in source order.
type SentimentResult struct {
	RunID        string
	Sentences    []string
	Scores       []float64
	Buckets      []sentiment.Bucket
	Distribution sentiment.Distribution
}

// Run executes the pipeline. Each non-empty sentence is scored exactly
// once, in order; the first scorer error aborts the run.
func (s *Sentiment) Run(ctx context.Context) (SentimentResult, error) {
	if s.Scorer == nil {
		return SentimentResult{}, fmt.Errorf("sentiment: no scorer: %w", internalerr.ErrInvalidConfig)
	}
	log := loggerOr(s.Logger).With("pipeline", "sentiment", "source", s.SourcePath)
	out := writerOr(s.Out)

	text, err := ingest.ReadSource(s.SourcePath)
	if err != nil {
		return SentimentResult{}, err
	}

	var res SentimentResult
	for _, sent := range ingest.SplitSentences(text) {
		if strings.TrimSpace(sent) == "" {
			continue
		}
		res.Sentences = append(res.Sentences, sent)
	}
	if len(res.Sentences) == 0 {
		return res, fmt.Errorf("sentiment %s: no sentences: %w", s.SourcePath, internalerr.ErrEmptyInputText)
	}

	res.Scores = make([]float64, 0, len(res.Sentences))
	for i, sent := range res.Sentences {
		score, err := s.Scorer.Score(ctx, sent)
		if err != nil {
			return res, fmt.Errorf("score sentence %d: %w", i+1, err)
		}
		if err := sentiment.ValidateScore(score); err != nil {
			return res, fmt.Errorf("score sentence %d: %w", i+1, err)
		}
		res.Scores = append(res.Scores, score)
		res.Buckets = append(res.Buckets, sentiment.Classify(score))
	}
	res.Distribution = sentiment.Distribute(res.Scores)
	log.Debug("scored sentences", "count", len(res.Scores),
		"positive", res.Distribution.Positive,
		"neutral", res.Distribution.Neutral,
		"negative", res.Distribution.Negative)

	fmt.Fprintln(out, "情感分析结果：")
	for i, score := range res.Scores {
		fmt.Fprintf(out, "句子 %d: 情感得分 = %.4f\n", i+1, score)
	}

	if s.Renderer != nil {
		if s.BarPath != "" {
			if err := s.Renderer.RenderBar(res.Scores, s.BarPath); err != nil {
				return res, fmt.Errorf("bar chart: %w", err)
			}
			log.Info("bar chart written", "path", s.BarPath)
		}
		if s.PiePath != "" {
			if err := s.Renderer.RenderPie(res.Distribution, s.PiePath); err != nil {
				return res, fmt.Errorf("pie chart: %w", err)
			}
			log.Info("pie chart written", "path", s.PiePath)
		}
	}

	if s.History != nil {
		run := store.NewRun(store.KindSentiment, s.SourcePath)
		for i, sent := range res.Sentences {
			run.Sentences = append(run.Sentences, store.ScoredSentence{
				Index:  i + 1,
				Text:   sent,
				Score:  res.Scores[i],
				Bucket: res.Buckets[i].String(),
			})
		}
		if err := s.History.SaveRun(ctx, run); err != nil {
			return res, fmt.Errorf("save history: %w", err)
		}
		res.RunID = run.ID
		log.Info("run recorded", "run_id", run.ID)
	}
	return res, nil
}
