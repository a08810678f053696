package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cognicore/textlens/internal/logging"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/pipeline"
	"github.com/cognicore/textlens/pkg/textlens/render"
)

func (a *app) sentimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Score each sentence and draw bar and pie charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			loader := cfg.SentimentLoader()
			comp, err := loader.Load()
			if err != nil {
				return err
			}
			defer comp.Close()

			// Charts still render without the font, minus the Chinese text.
			font, err := render.LoadFont(cfg.Font)
			if err != nil {
				if !errors.Is(err, internalerr.ErrMissingFontResource) {
					return err
				}
				logging.Logger.Warn("chart font unavailable", "font", cfg.Font, "err", err)
			}

			history, err := a.openHistory(ctx)
			if err != nil {
				return err
			}
			defer closeQuietly(history)

			p := &pipeline.Sentiment{
				Scorer:     comp.Scorer,
				Renderer:   &render.Charts{Font: font, DPI: cfg.DPI, Logger: logging.Logger},
				History:    history,
				Out:        cmd.OutOrStdout(),
				Logger:     logging.Logger,
				SourcePath: cfg.Sentiment.Source,
				BarPath:    cfg.Sentiment.Bar,
				PiePath:    cfg.Sentiment.Pie,
			}
			_, err = p.Run(ctx)
			return err
		},
	}

	f := cmd.Flags()
	f.String("source", "", "text file to analyse")
	f.String("scorer", "", "lexicon or llm")
	f.String("lexicon", "", "YAML sentiment lexicon (default built in)")
	f.String("bar", "", "bar chart PNG")
	f.String("pie", "", "pie chart PNG")
	mustBind(a.v.BindPFlag("sentiment.source", f.Lookup("source")))
	mustBind(a.v.BindPFlag("sentiment.scorer", f.Lookup("scorer")))
	mustBind(a.v.BindPFlag("sentiment.lexicon", f.Lookup("lexicon")))
	mustBind(a.v.BindPFlag("sentiment.bar", f.Lookup("bar")))
	mustBind(a.v.BindPFlag("sentiment.pie", f.Lookup("pie")))
	return cmd
}
