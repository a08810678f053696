package main

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/textlens/internal/logging"
	"github.com/cognicore/textlens/pkg/textlens/pipeline"
	"github.com/cognicore/textlens/pkg/textlens/render"
)

func (a *app) freqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Count words, print the top-N and draw a word cloud",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			loader := cfg.FrequencyLoader()
			comp, err := loader.Load()
			if err != nil {
				return err
			}
			defer comp.Close()

			font, err := render.LoadFont(cfg.Font)
			if err != nil {
				return err
			}

			history, err := a.openHistory(ctx)
			if err != nil {
				return err
			}
			defer closeQuietly(history)

			p := &pipeline.Frequency{
				Tokenizer:      comp.Tokenizer,
				Stoplist:       comp.Stoplist,
				Renderer:       render.NewWordCloud(font),
				History:        history,
				Out:            cmd.OutOrStdout(),
				Logger:         logging.Logger,
				TopN:           cfg.Frequency.TopN,
				SourcePath:     cfg.Frequency.Source,
				ReportPath:     cfg.Frequency.Report,
				AppendToSource: cfg.Frequency.AppendToSource,
				ImagePath:      cfg.Frequency.Image,
			}
			_, err = p.Run(ctx)
			return err
		},
	}

	f := cmd.Flags()
	f.String("source", "", "text file to analyse")
	f.String("stopwords", "", "stopword file, one word per line or YAML terms list")
	f.String("tokenizer", "", "jieba or rune")
	f.Bool("stem", false, "stem Latin words (rune tokenizer)")
	f.Int("top", 0, "number of words to report")
	f.String("report", "", "report file, replaced on every run")
	f.Bool("append", false, "append the report to the source file instead")
	f.String("image", "", "word cloud PNG")
	mustBind(a.v.BindPFlag("frequency.source", f.Lookup("source")))
	mustBind(a.v.BindPFlag("frequency.stopwords", f.Lookup("stopwords")))
	mustBind(a.v.BindPFlag("frequency.tokenizer", f.Lookup("tokenizer")))
	mustBind(a.v.BindPFlag("frequency.stem", f.Lookup("stem")))
	mustBind(a.v.BindPFlag("frequency.top_n", f.Lookup("top")))
	mustBind(a.v.BindPFlag("frequency.report", f.Lookup("report")))
	mustBind(a.v.BindPFlag("frequency.append_to_source", f.Lookup("append")))
	mustBind(a.v.BindPFlag("frequency.image", f.Lookup("image")))
	return cmd
}
