package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// ReadSource reads a UTF-8 source text and strips surrounding whitespace.
// HTML files (.html, .htm) are reduced to their visible text first.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("source %s: %w", path, internalerr.ErrMissingInputFile)
		}
		return "", fmt.Errorf("read source %s: %w", path, err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text = StripHTML(text)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("source %s: %w", path, internalerr.ErrEmptyInputText)
	}
	return text, nil
}

// StripHTML returns the text nodes of an HTML document, skipping script
// and style contents.
func StripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
