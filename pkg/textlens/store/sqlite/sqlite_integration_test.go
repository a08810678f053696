package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestSQLiteIntegrationRoundTrip saves both run kinds and reads them back.
func TestSQLiteIntegrationRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	freq := store.NewRun(store.KindFrequency, "北京野生动物园.txt")
	freq.Terms = []store.Term{
		{Rank: 1, Token: "公园", Count: 3},
		{Rank: 2, Token: "动物", Count: 2},
	}
	if err := st.SaveRun(ctx, freq); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	sent := store.NewRun(store.KindSentiment, "鸟巢.txt")
	sent.Sentences = []store.ScoredSentence{
		{Index: 1, Text: "鸟巢很好", Score: 0.82, Bucket: "positive"},
		{Index: 2, Text: "排队太久", Score: 0.21, Bucket: "negative"},
	}
	if err := st.SaveRun(ctx, sent); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, freq.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Kind != store.KindFrequency || got.Source != "北京野生动物园.txt" {
		t.Errorf("unexpected header %+v", got)
	}
	if len(got.Terms) != 2 || got.Terms[0].Token != "公园" || got.Terms[1].Count != 2 {
		t.Errorf("unexpected terms %+v", got.Terms)
	}
	if !got.CreatedAt.Equal(freq.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, freq.CreatedAt)
	}

	got, err = st.GetRun(ctx, sent.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if len(got.Sentences) != 2 || got.Sentences[1].Text != "排队太久" || got.Sentences[0].Score != 0.82 {
		t.Errorf("unexpected sentences %+v", got.Sentences)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GetRun(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteSaveReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	r := store.NewRun(store.KindFrequency, "a.txt")
	r.Terms = []store.Term{{Rank: 1, Token: "旧词", Count: 9}, {Rank: 2, Token: "其他", Count: 1}}
	if err := st.SaveRun(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Terms = []store.Term{{Rank: 1, Token: "新词", Count: 4}}
	if err := st.SaveRun(ctx, r); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetRun(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Terms) != 1 || got.Terms[0].Token != "新词" {
		t.Errorf("expected replaced terms, got %+v", got.Terms)
	}
}

func TestSQLiteListRuns(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	var ids []string
	for _, kind := range []store.Kind{store.KindSentiment, store.KindFrequency, store.KindSentiment} {
		r := store.NewRun(kind, "src.txt")
		if err := st.SaveRun(ctx, r); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID)
	}

	all, err := st.ListRuns(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 || all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Fatalf("expected newest first, got %+v", all)
	}

	sent, err := st.ListRuns(ctx, store.KindSentiment, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != 1 || sent[0].ID != ids[2] {
		t.Errorf("unexpected filtered list %+v", sent)
	}
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	r := store.NewRun(store.KindFrequency, "a.txt")
	if err := st.SaveRun(ctx, r); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if _, err := st.GetRun(ctx, r.ID); err != nil {
		t.Fatalf("run lost after reopen: %v", err)
	}
}
