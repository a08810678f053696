package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/textlens/internal/logging"
	"github.com/cognicore/textlens/pkg/textlens/config"
	"github.com/cognicore/textlens/pkg/textlens/store"
	"github.com/cognicore/textlens/pkg/textlens/store/sqlite"
)

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		slog.Error("textlens failed", "err", err)
		os.Exit(1)
	}
}

type app struct {
	v          *viper.Viper
	cfg        config.Config
	out        io.Writer
	configPath string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: config.NewViper(), out: out}

	root := &cobra.Command{
		Use:           "textlens",
		Short:         "Word frequency and sentence sentiment reports for Chinese text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.InitLogger(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.String("font", "", "TrueType font with CJK glyphs")
	pf.Int("dpi", 0, "chart resolution")
	pf.String("history-db", "", "SQLite run history (empty disables history)")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("log-format", "", "text or json")
	mustBind(a.v.BindPFlag("font", pf.Lookup("font")))
	mustBind(a.v.BindPFlag("dpi", pf.Lookup("dpi")))
	mustBind(a.v.BindPFlag("history_db", pf.Lookup("history-db")))
	mustBind(a.v.BindPFlag("log.level", pf.Lookup("log-level")))
	mustBind(a.v.BindPFlag("log.format", pf.Lookup("log-format")))

	root.AddCommand(a.freqCmd(), a.sentimentCmd(), a.historyCmd())
	return root
}

// mustBind panics on a flag that was never defined. Bound flags only
// override the config when set on the command line.
func mustBind(err error) {
	if err != nil {
		panic(fmt.Sprintf("bind flag: %v", err))
	}
}

// openHistory opens the configured history store, or returns nil when
// history is disabled.
func (a *app) openHistory(ctx context.Context) (store.Store, error) {
	if a.cfg.HistoryDB == "" {
		return nil, nil
	}
	st, err := sqlite.OpenSQLite(ctx, a.cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", a.cfg.HistoryDB, err)
	}
	return st, nil
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("close failed", "err", err)
	}
}
