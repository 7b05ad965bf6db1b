package importer

// review.go holds the working set of canonical rows during the correction
// loop. Point edits mutate exactly one row and re-validate only that row, so
// correction cost is proportional to edits made, not file size.

import "fmt"

// ReviewSet is the ordered working set of import rows for one session,
// together with the template they were mapped under.
type ReviewSet struct {
	Template BrokerTemplate
	Rows     []*ImportRow
}

// NewReviewSet maps and validates raw rows into a working set.
func NewReviewSet(raw []RawRow, tpl BrokerTemplate) *ReviewSet {
	rows := MapRows(raw, tpl)
	for _, row := range rows {
		row.Errors = Validate(row, tpl)
	}
	return &ReviewSet{Template: tpl, Rows: rows}
}

// UpdateField replaces one canonical attribute on one row and re-validates
// that row only. Derivations re-run first so a correction that supplies a
// missing name part or street line fills the still-absent derived attribute.
func (rs *ReviewSet) UpdateField(rowIndex int, attribute, value string) error {
	if rowIndex < 0 || rowIndex >= len(rs.Rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, rowIndex)
	}

	row := rs.Rows[rowIndex]
	if !row.Set(attribute, value) {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}

	Derive(row)
	row.Errors = Validate(row, rs.Template)
	return nil
}

// Summary reports the working set's validation state after mapping or edits.
type Summary struct {
	Total      int            `json:"total"`
	Valid      int            `json:"validCount"`
	Invalid    int            `json:"invalidCount"`
	ErrorTypes map[string]int `json:"errorTypeHistogram"`
}

// Summarize counts commit-eligible rows and builds the error-type histogram.
func (rs *ReviewSet) Summarize() Summary {
	s := Summary{
		Total:      len(rs.Rows),
		ErrorTypes: make(map[string]int),
	}

	for _, row := range rs.Rows {
		if row.Valid() {
			s.Valid++
			continue
		}
		s.Invalid++
		for _, e := range row.Errors {
			s.ErrorTypes[e]++
		}
	}

	return s
}
