package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

const (
	ColumnSubjectID   = "subject_id"
	ColumnPredicate   = "predicate"
	ColumnObjectID    = "object_id"
	ColumnObjectValue = "object_value"
)

// ParseError reports a malformed row together with its line number.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CSVTripleParser parses header-driven triple CSV files.
type CSVTripleParser struct{}

func NewCSVTripleParser() *CSVTripleParser {
	return &CSVTripleParser{}
}

func (p *CSVTripleParser) ParseTriples(content []byte) ([]triple.Triple, error) {
	return ParseTriples(content)
}

// ParseTriples reads CSV content whose header names the columns
// subject_id, predicate, object_id and object_value. The object columns
// are optional and the header may list the columns in any order. Blank
// rows are skipped; an empty subject is kept so later stages can report it.
func ParseTriples(content []byte) ([]triple.Triple, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, err
	}

	columns, err := headerColumns(header)
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	// Only the subject and predicate fields must be present; trailing
	// object columns may be left off.
	required := max(columns[ColumnSubjectID], columns[ColumnPredicate])

	var triples []triple.Triple
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(record) <= required {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected at least %d fields, got %d", required+1, len(record))}
		}

		t := triple.Triple{
			SubjectID:   field(record, columns, ColumnSubjectID),
			Predicate:   field(record, columns, ColumnPredicate),
			ObjectID:    field(record, columns, ColumnObjectID),
			ObjectValue: field(record, columns, ColumnObjectValue),
		}
		if t.Predicate == "" {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("empty predicate")}
		}
		triples = append(triples, t)
	}

	return triples, nil
}

func headerColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		columns[name] = i
	}

	for _, required := range []string{ColumnSubjectID, ColumnPredicate} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return columns, nil
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
