package importer

// excel.go reads spreadsheet-container manifests. Only the first sheet is
// read; excelize trims trailing empty cells per row, so rows are padded back
// to the header width with empty strings.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

func parseWorkbook(data []byte) (*ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	result := &ParseResult{}

	for i, record := range records {
		if isEmptyRecord(record) {
			continue
		}

		if result.Headers == nil {
			result.Headers = cleanHeaders(record)
			continue
		}

		// Sheet row numbers are 1-based, matching what the user sees.
		result.Rows = append(result.Rows, rawRowFrom(result.Headers, record, i+1))
	}

	if result.Headers == nil {
		return nil, ErrEmptyFile
	}

	return result, nil
}
