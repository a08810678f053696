package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		kind  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openHistory(ctx)
			if err != nil {
				return err
			}
			if st == nil {
				return fmt.Errorf("history: no history_db configured: %w", internalerr.ErrInvalidConfig)
			}
			defer closeQuietly(st)

			if len(args) == 1 {
				run, err := st.GetRun(ctx, args[0])
				if err != nil {
					return err
				}
				return printRun(cmd.OutOrStdout(), run)
			}

			switch store.Kind(kind) {
			case "", store.KindFrequency, store.KindSentiment:
			default:
				return fmt.Errorf("history: unknown kind %q: %w", kind, internalerr.ErrInvalidInput)
			}
			runs, err := st.ListRuns(ctx, store.Kind(kind), limit)
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "frequency or sentiment")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 for all)")
	return cmd
}

func printRuns(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCREATED\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Kind, r.CreatedAt.Local().Format(time.DateTime), r.Source)
	}
	return tw.Flush()
}

func printRun(w io.Writer, r store.Run) error {
	fmt.Fprintf(w, "%s %s %s %s\n", r.ID, r.Kind, r.CreatedAt.Local().Format(time.DateTime), r.Source)
	for _, t := range r.Terms {
		fmt.Fprintf(w, "%d\t(%s, %d)\n", t.Rank, t.Token, t.Count)
	}
	for _, s := range r.Sentences {
		fmt.Fprintf(w, "句子 %d: 情感得分 = %.4f [%s] %s\n", s.Index, s.Score, s.Bucket, s.Text)
	}
	return nil
}
