package core

// parse.go reads contact CSV files into rows.
//
// Files must be UTF-8 text; a leading byte order mark is dropped. The grammar
// is RFC 4180: quoted fields may contain commas and newlines, and a doubled
// quote inside a quoted field is a literal quote. Bare quotes inside unquoted
// fields are tolerated. Rows may have differing numbers of cells.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// File-level errors. Any of these aborts an import with no partial result.
var (
	ErrParse        = errors.New("failed to parse CSV")
	ErrEncoding     = fmt.Errorf("%w: encoding error, file is not UTF-8 text", ErrParse)
	ErrEmptyFile    = errors.New("empty file")
	ErrNoDataRows   = errors.New("no data rows after header")
	ErrFileTooLarge = errors.New("file too large")
)

// ReadLimited reads r to the end. It fails with ErrFileTooLarge when r holds
// more than max bytes. A max of zero or less disables the limit.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read: %v", ErrParse, err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrParse, err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, max)
	}
	return data, nil
}

// ParseCSV reads all of r and parses it with ParseCSVBytes.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrParse, err)
	}
	return ParseCSVBytes(data)
}

// ParseCSVBytes parses file content into rows, one per non-blank line, in
// file order. The header, if any, is the first row. Cells are trimmed.
func ParseCSVBytes(data []byte) ([]RawRow, error) {
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, ErrEncoding
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, perr.Line, perr.Err)
			}
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		row := make(RawRow, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		if isEmptyRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// isEmptyRow reports whether row came from an empty or whitespace-only line.
// A line of delimiters such as ",," is a row of empty cells and is kept.
func isEmptyRow(row RawRow) bool {
	switch len(row) {
	case 0:
		return true
	case 1:
		return strings.TrimSpace(row[0]) == ""
	default:
		return false
	}
}
