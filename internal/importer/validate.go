package importer

// validate.go computes the per-row validation error list.
//
// Two independent passes:
//  1. Template-required: every required template field must carry a value.
//     Fields with a canonical target are checked through the target, so a
//     manual correction of the canonical attribute satisfies them; fields
//     kept raw-only are checked against the raw snapshot.
//  2. Canonical-required: pickup address, dropoff address, trip date, and at
//     least one name part, regardless of template. This catches gaps a
//     template never covered (a partner with no dropoff column at all).
//
// Validate returns a fresh list and the caller replaces, never appends, so
// repeated validation of the same row is idempotent. Pass 2 skips attributes
// already reported by pass 1 so one gap yields one error.

import "fmt"

// Validate computes the full validation error list for one row under its
// template. The result replaces any previous list.
func Validate(row *ImportRow, tpl BrokerTemplate) []string {
	var errs []string

	// Pass 1: template-required checks.
	failedTargets := make(map[string]bool)
	for _, f := range tpl.Fields {
		if !f.Required {
			continue
		}
		if templateFieldPresent(row, f) {
			continue
		}
		errs = append(errs, fmt.Sprintf("missing required field %q", f.Column))
		if f.Target != "" {
			failedTargets[f.Target] = true
		}
	}

	// Pass 2: canonical-required checks, independent of the template.
	if !failedTargets[AttrPickupAddress] && !failedTargets[AttrPickupLine1] {
		if row.PickupAddress == "" && row.PickupLine1 == "" {
			errs = append(errs, "pickup address is required")
		}
	}
	if !failedTargets[AttrDropoffAddress] && !failedTargets[AttrDropoffLine1] {
		if row.DropoffAddress == "" && row.DropoffLine1 == "" {
			errs = append(errs, "dropoff address is required")
		}
	}
	if !failedTargets[AttrTripDate] {
		if row.TripDate == "" {
			errs = append(errs, "trip date is required")
		}
	}
	if !failedTargets[AttrFullName] && !failedTargets[AttrFirstName] && !failedTargets[AttrLastName] {
		if row.FullName == "" && row.FirstName == "" && row.LastName == "" {
			errs = append(errs, "patient name is required")
		}
	}

	// Format checks on values that are present.
	if row.TripDate != "" && !ToPgDate(row.TripDate).Valid {
		errs = append(errs, fmt.Sprintf("invalid trip date %q", row.TripDate))
	}
	if row.DateOfBirth != "" && !ToPgDate(row.DateOfBirth).Valid {
		errs = append(errs, fmt.Sprintf("invalid date of birth %q", row.DateOfBirth))
	}
	if row.Miles != "" && !ToPgNumeric(row.Miles).Valid {
		errs = append(errs, fmt.Sprintf("invalid mileage %q", row.Miles))
	}
	if row.RideMinutes != "" && !ToPgNumeric(row.RideMinutes).Valid {
		errs = append(errs, fmt.Sprintf("invalid ride minutes %q", row.RideMinutes))
	}

	return errs
}

// templateFieldPresent reports whether a required template field is satisfied,
// through its canonical target when it has one, else through the raw snapshot.
func templateFieldPresent(row *ImportRow, f TemplateField) bool {
	if f.Target != "" {
		v, _ := row.Get(f.Target)
		return v != ""
	}
	return CleanCell(row.Raw.Values[f.Column]) != ""
}
