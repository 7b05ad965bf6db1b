package importer

// parse.go turns an uploaded manifest into raw header->value records.
//
// Dispatch is by file extension. Delimited text is read row by row so one
// malformed row is collected as a parse error without aborting the rest of
// the file; spreadsheet containers are handed to excel.go. An unrecognized
// extension fails with ErrUnsupportedFormat before any row is read.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ParseResult is the output of parsing one manifest: whatever rows could be
// read, the header row, and per-row parse errors for rows that could not.
type ParseResult struct {
	Headers     []string
	Rows        []RawRow
	ParseErrors []string
}

// ParseManifest parses an uploaded file into raw rows. The first row (or the
// first row of the first sheet) is the header. Blank rows are skipped.
func ParseManifest(fileName string, data []byte) (*ParseResult, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch ext {
	case ".csv":
		return parseDelimited(data, ',')
	case ".tsv":
		return parseDelimited(data, '\t')
	case ".txt":
		return parseDelimited(data, sniffDelimiter(data))
	case ".xlsx", ".xlsm":
		return parseWorkbook(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// parseDelimited reads delimited text record by record, collecting malformed
// rows into ParseErrors instead of aborting.
func parseDelimited(data []byte, comma rune) (*ParseResult, error) {
	data = sanitizeUTF8(data)
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	result := &ParseResult{}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				result.ParseErrors = append(result.ParseErrors,
					fmt.Sprintf("row %d: %v", pe.Line, pe.Err))
				continue
			}
			result.ParseErrors = append(result.ParseErrors, err.Error())
			continue
		}

		if isEmptyRecord(record) {
			continue
		}

		if result.Headers == nil {
			result.Headers = cleanHeaders(record)
			continue
		}

		line, _ := r.FieldPos(0)
		result.Rows = append(result.Rows, rawRowFrom(result.Headers, record, line))
	}

	if result.Headers == nil {
		return nil, ErrEmptyFile
	}

	return result, nil
}

// rawRowFrom zips a record against the headers. Cells beyond the header width
// are dropped; short records simply leave the trailing headers absent.
func rawRowFrom(headers, record []string, line int) RawRow {
	values := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(record) {
			values[h] = CleanCell(record[i])
		} else {
			values[h] = ""
		}
	}
	return RawRow{Line: line, Values: values}
}

func cleanHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, h := range record {
		headers[i] = CleanCell(h)
	}
	return headers
}

// sniffDelimiter picks tab or comma for .txt files based on the first line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{'\t'}) > bytes.Count(line, []byte{','}) {
		return '\t'
	}
	return ','
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so the CSV reader never chokes on partner exports saved in
// legacy encodings.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
