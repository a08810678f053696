package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cognicore/textlens/pkg/textlens/analytics"
	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/render"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

// Frequency counts the words of one source file, reports the top-N and
// draws a word cloud of the full table.
type Frequency struct {
	Tokenizer ingest.Tokenizer
	Stoplist  analytics.StopChecker
	Renderer  render.WordCloudRenderer // nil skips the word cloud
	History   store.Store              // nil disables run history
	Out       io.Writer                // console report, nil discards
	Logger    *slog.Logger

	TopN       int
	SourcePath string
	ReportPath string
	// AppendToSource appends the report to SourcePath instead of writing
	// ReportPath. Later runs then count the report lines as input.
	AppendToSource bool
	ImagePath      string
}

// FrequencyResult is everything a frequency run computed.
type FrequencyResult struct {
	RunID string
	// Text is the trimmed source as read, before any report was appended.
	Text   string
	Tokens []string
	Table  analytics.Table
	Ranked []analytics.Entry
	Top    []analytics.Entry
	// ReportPath is where the report was written, empty if nowhere.
	ReportPath string
	ImagePath  string
}

// Run executes the pipeline. The source is fully read before anything is
// written, so a run never counts its own report.
func (f *Frequency) Run(ctx context.Context) (FrequencyResult, error) {
	if f.Tokenizer == nil {
		return FrequencyResult{}, fmt.Errorf("frequency: no tokenizer: %w", internalerr.ErrInvalidConfig)
	}
	log := loggerOr(f.Logger).With("pipeline", "frequency", "source", f.SourcePath)
	out := writerOr(f.Out)
	topN := f.TopN
	if topN == 0 {
		topN = analytics.DefaultTopN
	}

	text, err := ingest.ReadSource(f.SourcePath)
	if err != nil {
		return FrequencyResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return FrequencyResult{}, err
	}

	res := FrequencyResult{Text: text}
	res.Tokens = f.Tokenizer.Tokenize(text)
	res.Table = analytics.Count(res.Tokens, f.Stoplist)
	res.Ranked = res.Table.Ranked()
	log.Debug("counted tokens", "tokens", len(res.Tokens), "distinct", res.Table.Len())

	res.Top, err = analytics.Top(res.Ranked, topN)
	if err != nil {
		return res, fmt.Errorf("frequency %s: %w", f.SourcePath, err)
	}
	if err := analytics.WriteReport(out, res.Top); err != nil {
		return res, fmt.Errorf("print report: %w", err)
	}

	switch {
	case f.AppendToSource:
		if err := analytics.AppendReport(f.SourcePath, res.Top); err != nil {
			return res, err
		}
		res.ReportPath = f.SourcePath
	case f.ReportPath != "":
		if err := analytics.WriteReportFile(f.ReportPath, res.Top); err != nil {
			return res, err
		}
		res.ReportPath = f.ReportPath
	}
	if res.ReportPath != "" {
		log.Info("report written", "path", res.ReportPath, "append", f.AppendToSource)
	}

	if f.Renderer != nil && f.ImagePath != "" {
		if err := f.Renderer.RenderWordCloud(res.Ranked, f.ImagePath); err != nil {
			return res, fmt.Errorf("word cloud: %w", err)
		}
		res.ImagePath = f.ImagePath
		fmt.Fprintf(out, "词云图已保存为 %s\n", f.ImagePath)
	}

	if f.History != nil {
		run := store.NewRun(store.KindFrequency, f.SourcePath)
		for i, e := range res.Top {
			run.Terms = append(run.Terms, store.Term{Rank: i + 1, Token: e.Token, Count: e.Count})
		}
		if err := f.History.SaveRun(ctx, run); err != nil {
			return res, fmt.Errorf("save history: %w", err)
		}
		res.RunID = run.ID
		log.Info("run recorded", "run_id", run.ID)
	}
	return res, nil
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

func writerOr(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return io.Discard
}
