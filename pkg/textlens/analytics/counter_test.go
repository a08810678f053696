package analytics

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/stoplist"
)

func TestCountExample(t *testing.T) {
	stops := stoplist.NewSet([]string{"的", "了"})
	tokens := []string{"动物", "动物", "的", "了", "公园", "公园", "公园"}

	table := Count(tokens, stops)

	want := map[string]int{"动物": 2, "公园": 3}
	if !reflect.DeepEqual(table.Counts, want) {
		t.Errorf("Count() = %v, want %v", table.Counts, want)
	}
	if table.TokensSeen != len(tokens) {
		t.Errorf("TokensSeen = %d, want %d", table.TokensSeen, len(tokens))
	}
}

func TestCountFilterInvariant(t *testing.T) {
	stops := stoplist.NewSet([]string{"我们", "the"})
	tokens := []string{"我们", "鸟", "鸟巢", "\n", "\n\n", "  ", "the", "天气", "a", "ab", "。", "，，"}

	table := Count(tokens, stops)

	for tok := range table.Counts {
		if utf8.RuneCountInString(tok) <= 1 {
			t.Errorf("single-character token %q counted", tok)
		}
		if stops.IsStop(tok) {
			t.Errorf("stopword %q counted", tok)
		}
	}
	for _, tok := range []string{"\n\n", "  "} {
		if _, ok := table.Counts[tok]; ok {
			t.Errorf("whitespace token %q counted", tok)
		}
	}
	for _, tok := range []string{"鸟巢", "天气", "ab", "，，"} {
		if table.Counts[tok] != 1 {
			t.Errorf("expected %q counted once, got %d", tok, table.Counts[tok])
		}
	}
}

func TestCountRunesNotBytes(t *testing.T) {
	// "鸟" is three bytes but a single character.
	table := Count([]string{"鸟", "鸟"}, nil)
	if table.Len() != 0 {
		t.Errorf("single Han character must be excluded, got %v", table.Counts)
	}
}

func TestRankedNonIncreasing(t *testing.T) {
	tokens := []string{"aa", "bb", "bb", "cc", "cc", "cc", "dd", "ee", "ee", "aa", "ff"}
	entries := Count(tokens, nil).Ranked()

	for i := 1; i < len(entries); i++ {
		if entries[i].Count > entries[i-1].Count {
			t.Fatalf("ranking increases at %d: %v", i, entries)
		}
	}
}

func TestRankedTieBreakFirstSeen(t *testing.T) {
	tokens := []string{"北京", "动物", "公园", "公园", "动物", "北京", "老虎"}
	entries := Count(tokens, nil).Ranked()

	want := []Entry{
		{Token: "北京", Count: 2},
		{Token: "动物", Count: 2},
		{Token: "公园", Count: 2},
		{Token: "老虎", Count: 1},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Ranked() = %v, want %v", entries, want)
	}
}

func TestRankedHandBuiltTable(t *testing.T) {
	table := Table{Counts: map[string]int{"bb": 1, "aa": 1, "cc": 5}}
	entries := table.Ranked()
	want := []Entry{{"cc", 5}, {"aa", 1}, {"bb", 1}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Ranked() = %v, want %v", entries, want)
	}
}

func TestTableIsCopy(t *testing.T) {
	c := NewCounter(nil)
	c.Add([]string{"动物"})
	table := c.Table()
	c.Add([]string{"动物"})

	if table.Counts["动物"] != 1 {
		t.Errorf("table must not see later additions, got %d", table.Counts["动物"])
	}
}

func TestTop(t *testing.T) {
	var tokens []string
	for i := 0; i < 25; i++ {
		for j := 0; j <= i; j++ {
			tokens = append(tokens, fmt.Sprintf("词%02d", i))
		}
	}
	entries := Count(tokens, nil).Ranked()

	top, err := Top(entries, DefaultTopN)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(top) != DefaultTopN {
		t.Fatalf("expected %d entries, got %d", DefaultTopN, len(top))
	}
	if top[0].Token != "词24" || top[0].Count != 25 {
		t.Errorf("unexpected head %v", top[0])
	}
}

func TestTopInsufficientVocabulary(t *testing.T) {
	entries := Count([]string{"动物", "公园", "老虎"}, nil).Ranked()

	top, err := Top(entries, DefaultTopN)
	if !errors.Is(err, internalerr.ErrInsufficientVocabulary) {
		t.Fatalf("expected ErrInsufficientVocabulary, got %v", err)
	}
	if top != nil {
		t.Errorf("expected no entries on error, got %v", top)
	}
}

func TestTopExactBoundary(t *testing.T) {
	entries := make([]Entry, 3)
	if _, err := Top(entries, 3); err != nil {
		t.Errorf("exactly n entries should succeed: %v", err)
	}
	if _, err := Top(entries, 0); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("n=0 should be invalid input, got %v", err)
	}
}

func TestEntryString(t *testing.T) {
	if got := (Entry{Token: "公园", Count: 3}).String(); got != "(公园, 3)" {
		t.Errorf("String() = %q", got)
	}
}

func TestFrequencies(t *testing.T) {
	freq := Frequencies([]Entry{{"公园", 3}, {"动物", 2}})
	if freq["公园"] != 3 || freq["动物"] != 2 || len(freq) != 2 {
		t.Errorf("unexpected map %v", freq)
	}
}
