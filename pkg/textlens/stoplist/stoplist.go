package stoplist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Set is an immutable stopword set. Build it once and hand the same
// pointer to every consumer; there is no way to mutate it afterwards.
type Set struct {
	stops map[string]struct{}
}

// NewSet creates a stopword set from the given terms. A newline is always
// a member so that line breaks emitted by segmenters never count.
func NewSet(terms []string) *Set {
	stops := make(map[string]struct{}, len(terms)+1)
	for _, s := range terms {
		stops[s] = struct{}{}
	}
	stops["\n"] = struct{}{}
	return &Set{stops: stops}
}

// IsStop checks if a token is a stopword
func (s *Set) IsStop(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.stops[token]
	return ok
}

// Len returns the number of stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.stops)
}

// All returns all stopwords, sorted.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.stops))
	for w := range s.stops {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Load reads a stopword file. Plain text files hold one stopword per line;
// files ending in .yaml or .yml hold a `terms:` list.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stoplist %s: %w", path, internalerr.ErrMissingInputFile)
		}
		return nil, fmt.Errorf("read stoplist %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc struct {
			Terms []string `yaml:"terms"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
		}
		return NewSet(trimAll(doc.Terms)), nil
	default:
		terms, err := ReadLines(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
		}
		return NewSet(terms), nil
	}
}

// ReadLines reads one stopword per line, trimming surrounding whitespace
// and skipping blank lines.
func ReadLines(r io.Reader) ([]string, error) {
	var terms []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return terms, nil
}

func trimAll(terms []string) []string {
	out := terms[:0]
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
