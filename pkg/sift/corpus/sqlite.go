package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "modernc.org/sqlite"
)

// TableSpec names the table and columns holding labeled samples in a
// SQLite dataset.
type TableSpec struct {
	Table       string
	TextColumn  string
	LabelColumn string
}

// DefaultTableSpec matches the layout sift's corpora ship with.
func DefaultTableSpec() TableSpec {
	return TableSpec{Table: "samples", TextColumn: "text", LabelColumn: "label"}
}

// SQLiteSource reads samples from a table in a SQLite database. Rows with
// NULL text or label are skipped.
type SQLiteSource struct {
	db   *sql.DB
	rows *sql.Rows
}

// OpenSQLite opens a SQLite dataset and starts streaming the sample table.
func OpenSQLite(ctx context.Context, path string, spec TableSpec) (*SQLiteSource, error) {
	if spec.Table == "" {
		spec = DefaultTableSpec()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s, %s FROM %s", spec.TextColumn, spec.LabelColumn, spec.Table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteSource{db: db, rows: rows}, nil
}

func (s *SQLiteSource) Next() (Sample, error) {
	for s.rows.Next() {
		var text, label sql.NullString
		if err := s.rows.Scan(&text, &label); err != nil {
			continue
		}
		if !text.Valid || !label.Valid {
			continue
		}
		return Sample{Text: text.String, Label: label.String}, nil
	}
	if err := s.rows.Err(); err != nil {
		return Sample{}, err
	}
	return Sample{}, io.EOF
}

func (s *SQLiteSource) Close() error {
	s.rows.Close()
	return s.db.Close()
}
