package corpus

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

const (
	textIndex  = 0
	labelIndex = 1
)

// CSVSource reads samples from a CSV file with a header row. Field 0 is
// the text and field 1 the label. Rows with too few fields or with CSV
// parse errors are skipped; only I/O failures abort the stream.
type CSVSource struct {
	file   *os.File
	reader *csv.Reader
}

// OpenCSV opens a CSV dataset and consumes its header row.
func OpenCSV(path string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Header row; a malformed header is treated like any other bad record.
	if _, err := reader.Read(); err != nil && err != io.EOF {
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			file.Close()
			return nil, err
		}
	}

	return &CSVSource{file: file, reader: reader}, nil
}

func (s *CSVSource) Next() (Sample, error) {
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			return Sample{}, io.EOF
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return Sample{}, err
		}
		if len(record) <= labelIndex {
			continue
		}
		return Sample{Text: record[textIndex], Label: record[labelIndex]}, nil
	}
}

func (s *CSVSource) Close() error {
	return s.file.Close()
}
