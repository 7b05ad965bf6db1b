package importer

// mapping.go applies a broker template to raw rows, producing canonical
// import rows, then runs pure per-row derivations. Derivations only fill
// absent attributes, so re-mapping an already-derived row is a no-op.

import "strings"

// MapRows normalizes raw rows under a template. For each template field with
// a canonical target, the raw value is copied only if non-empty; unmapped
// columns stay in the raw snapshot and are dropped from the canonical row.
func MapRows(raw []RawRow, tpl BrokerTemplate) []*ImportRow {
	rows := make([]*ImportRow, len(raw))
	for i, rr := range raw {
		rows[i] = mapRow(rr, tpl)
	}
	return rows
}

func mapRow(rr RawRow, tpl BrokerTemplate) *ImportRow {
	row := &ImportRow{Raw: rr}

	for _, f := range tpl.Fields {
		if f.Target == "" {
			continue
		}
		v := CleanCell(rr.Values[f.Column])
		if v == "" {
			continue
		}
		row.Set(f.Target, v)
	}

	Derive(row)
	return row
}

// Derive runs the pure derivation rules on one row. Each rule is a function
// only of that row's own fields and is idempotent: derived attributes are
// written only when absent.
func Derive(row *ImportRow) {
	if row.FullName == "" && row.FirstName != "" && row.LastName != "" {
		row.FullName = row.FirstName + " " + row.LastName
	}

	if row.PickupAddress == "" {
		row.PickupAddress = composeAddress(row.PickupLine1, row.PickupLine2,
			row.PickupCity, row.PickupState, row.PickupZip)
	}
	if row.DropoffAddress == "" {
		row.DropoffAddress = composeAddress(row.DropoffLine1, row.DropoffLine2,
			row.DropoffCity, row.DropoffState, row.DropoffZip)
	}
}

// composeAddress joins address parts as "line[, line2], city, state zip".
// The street line anchors the address: without it nothing is synthesized.
// Any other missing component is omitted with no placeholder.
func composeAddress(line1, line2, city, state, zip string) string {
	if line1 == "" {
		return ""
	}

	parts := []string{line1}
	if line2 != "" {
		parts = append(parts, line2)
	}
	if city != "" {
		parts = append(parts, city)
	}

	region := strings.TrimSpace(state + " " + zip)
	if region != "" {
		parts = append(parts, region)
	}

	return strings.Join(parts, ", ")
}
