package analytics

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteReport writes one "(token, count)" line per entry.
func WriteReport(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// AppendReport appends the report to path, creating the file if needed.
// When path is also the source text, every later run will count the
// report lines as input.
func AppendReport(path string, entries []Entry) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := WriteReport(f, entries); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// WriteReportFile replaces path with the report.
func WriteReportFile(path string, entries []Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := WriteReport(f, entries); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
