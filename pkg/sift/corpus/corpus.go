package corpus

import (
	"context"
	"path/filepath"
	"strings"
)

// Sample is one labeled training record.
type Sample struct {
	Text  string
	Label string
}

// Recognized label values. Any other label is kept in the stream but
// contributes no class counts downstream.
const (
	LabelSpam = "spam"
	LabelHam  = "ham"
)

// Source streams labeled samples. Next returns io.EOF once the dataset is
// exhausted; individual malformed records are skipped inside the source,
// never surfaced as errors.
type Source interface {
	Next() (Sample, error)
	Close() error
}

// Open picks a source by file extension: .db, .sqlite and .sqlite3 open as
// a SQLite dataset, anything else as CSV.
func Open(ctx context.Context, path string, spec TableSpec) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(ctx, path, spec)
	default:
		return OpenCSV(path)
	}
}

// StripHTMLSource wraps a source, stripping markup from each sample's text.
// Useful for corpora scraped from web pages.
type StripHTMLSource struct {
	Source
}

func (s StripHTMLSource) Next() (Sample, error) {
	sample, err := s.Source.Next()
	if err != nil {
		return sample, err
	}
	sample.Text = StripHTML(sample.Text)
	return sample, nil
}
