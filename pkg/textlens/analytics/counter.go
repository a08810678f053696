package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// DefaultTopN is the size of the printed and written frequency report.
const DefaultTopN = 20

// StopChecker reports whether a token is a stopword.
type StopChecker interface {
	IsStop(token string) bool
}

// Counter accumulates token frequencies in a single pass.
//
// A token is counted when it is longer than one character (runes, not
// bytes), is not whitespace-only, and is not a stopword. Single-character
// tokens are always excluded regardless of meaning.
type Counter struct {
	stops  StopChecker
	counts map[string]int
	order  []string // first-seen order, used for tie-breaking
	seen   int      // tokens inspected, counted or not
}

// NewCounter creates an empty counter. stops may be nil.
func NewCounter(stops StopChecker) *Counter {
	return &Counter{
		stops:  stops,
		counts: make(map[string]int),
	}
}

// Add consumes a token stream.
func (c *Counter) Add(tokens []string) {
	for _, tok := range tokens {
		c.seen++
		if !c.qualifies(tok) {
			continue
		}
		if _, ok := c.counts[tok]; !ok {
			c.order = append(c.order, tok)
		}
		c.counts[tok]++
	}
}

func (c *Counter) qualifies(tok string) bool {
	if utf8.RuneCountInString(tok) <= 1 {
		return false
	}
	if strings.TrimSpace(tok) == "" {
		return false
	}
	if c.stops != nil && c.stops.IsStop(tok) {
		return false
	}
	return true
}

// Table returns a copy of the accumulated frequencies.
func (c *Counter) Table() Table {
	counts := make(map[string]int, len(c.counts))
	for tok, n := range c.counts {
		counts[tok] = n
	}
	order := make([]string, len(c.order))
	copy(order, c.order)
	return Table{Counts: counts, order: order, TokensSeen: c.seen}
}

// Count is a one-shot helper: count tokens against stops.
func Count(tokens []string, stops StopChecker) Table {
	c := NewCounter(stops)
	c.Add(tokens)
	return c.Table()
}

// Table maps each qualifying token to its occurrence count.
type Table struct {
	Counts     map[string]int
	TokensSeen int

	order []string
}

// Len returns the number of distinct qualifying tokens.
func (t Table) Len() int { return len(t.Counts) }

// Ranked returns all entries sorted by count, descending. Equal counts keep
// the order in which the tokens first appeared in the stream.
func (t Table) Ranked() []Entry {
	entries := make([]Entry, 0, len(t.Counts))
	if len(t.order) == len(t.Counts) {
		for _, tok := range t.order {
			entries = append(entries, Entry{Token: tok, Count: t.Counts[tok]})
		}
	} else {
		// Table built by hand without stream order; fall back to token order.
		for tok, n := range t.Counts {
			entries = append(entries, Entry{Token: tok, Count: n})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Token < entries[j].Token })
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Entry is one (token, count) pair of a ranked list.
type Entry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// String renders the entry as "(token, count)".
func (e Entry) String() string {
	return fmt.Sprintf("(%s, %d)", e.Token, e.Count)
}

// Top returns exactly the first n entries. Fewer than n entries is an
// error, never a silent truncation.
func Top(entries []Entry, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top %d: %w", n, internalerr.ErrInvalidInput)
	}
	if len(entries) < n {
		return nil, fmt.Errorf("need %d distinct tokens, have %d: %w", n, len(entries), internalerr.ErrInsufficientVocabulary)
	}
	out := make([]Entry, n)
	copy(out, entries[:n])
	return out, nil
}

// Frequencies converts entries back to a token->count map.
func Frequencies(entries []Entry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.Token] = e.Count
	}
	return out
}
