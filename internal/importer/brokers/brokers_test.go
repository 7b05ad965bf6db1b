package brokers

import (
	"testing"

	"github.com/Yahia89/meditrans/internal/importer"
)

// TestCatalogIntegrity checks every registered template's declarative data:
// mapped targets must be canonical attributes and column headers must be
// unique within a template, or mapping would silently drop cells.
func TestCatalogIntegrity(t *testing.T) {
	templates := importer.All()
	if len(templates) == 0 {
		t.Fatal("no templates registered")
	}

	for _, tpl := range templates {
		t.Run(tpl.ID, func(t *testing.T) {
			if tpl.Name == "" {
				t.Error("template has no display name")
			}
			if len(tpl.Fields) == 0 {
				t.Fatal("template has no fields")
			}

			seen := make(map[string]bool)
			for _, f := range tpl.Fields {
				if f.Column == "" {
					t.Error("field with empty column header")
				}
				if seen[f.Column] {
					t.Errorf("duplicate column %q", f.Column)
				}
				seen[f.Column] = true

				if f.Target != "" && !importer.KnownAttribute(f.Target) {
					t.Errorf("column %q maps to unknown attribute %q", f.Column, f.Target)
				}
			}
		})
	}
}

func TestCatalogCoversKnownPartners(t *testing.T) {
	for _, id := range []string{
		"modivcare_standard",
		"mtm_daily",
		"access2care_export",
		"medicaid_ffs",
		"davita_schedule",
	} {
		if _, ok := importer.Get(id); !ok {
			t.Errorf("partner template %q not registered", id)
		}
	}
}

// TestCatalogRowsValidate maps a fully populated synthetic row through each
// template and expects no validation errors: a template whose own columns
// cannot produce a committable row is misconfigured.
func TestCatalogRowsValidate(t *testing.T) {
	sample := map[string]string{
		importer.AttrFirstName:       "Jane",
		importer.AttrLastName:        "Doe",
		importer.AttrFullName:        "Jane Doe",
		importer.AttrPhone:           "602-555-0142",
		importer.AttrDateOfBirth:     "04/02/1951",
		importer.AttrPickupLine1:     "450 W Thomas Rd",
		importer.AttrPickupLine2:     "Suite 120",
		importer.AttrPickupCity:      "Phoenix",
		importer.AttrPickupState:     "AZ",
		importer.AttrPickupZip:       "85013",
		importer.AttrPickupAddress:   "450 W Thomas Rd, Phoenix, AZ 85013",
		importer.AttrDropoffLine1:    "1919 E Thomas Rd",
		importer.AttrDropoffLine2:    "Bldg B",
		importer.AttrDropoffCity:     "Phoenix",
		importer.AttrDropoffState:    "AZ",
		importer.AttrDropoffZip:      "85016",
		importer.AttrDropoffAddress:  "1919 E Thomas Rd, Phoenix, AZ 85016",
		importer.AttrTripDate:        "03/14/2025",
		importer.AttrPickupTime:      "9:15 AM",
		importer.AttrAppointmentTime: "10:00 AM",
		importer.AttrMiles:           "6.2",
		importer.AttrRideMinutes:     "25",
		importer.AttrTripType:        "ambulatory",
		importer.AttrNotes:           "door to door",
		importer.AttrExternalTripID:  "TRIP-1001",
		importer.AttrMemberID:        "A123456789",
	}

	for _, tpl := range importer.All() {
		t.Run(tpl.ID, func(t *testing.T) {
			values := make(map[string]string, len(tpl.Fields))
			for _, f := range tpl.Fields {
				if f.Target != "" {
					values[f.Column] = sample[f.Target]
				} else {
					values[f.Column] = "x"
				}
			}

			rows := importer.MapRows([]importer.RawRow{{Line: 2, Values: values}}, tpl)
			errs := importer.Validate(rows[0], tpl)

			// A template may legitimately lack a whole attribute family
			// (some partners send no dropoff at all); those rows stay
			// invalid until the reviewer fills the gap. Everything else
			// must validate clean.
			for _, e := range errs {
				if !allowedCanonicalGap(tpl, e) {
					t.Errorf("fully populated row fails validation: %q", e)
				}
			}
		})
	}
}

// allowedCanonicalGap reports whether err is the canonical-requirement error
// for an attribute family the template has no column for.
func allowedCanonicalGap(tpl importer.BrokerTemplate, err string) bool {
	targets := make(map[string]bool)
	for _, f := range tpl.Fields {
		targets[f.Target] = true
	}

	switch err {
	case "pickup address is required":
		return !targets[importer.AttrPickupAddress] && !targets[importer.AttrPickupLine1]
	case "dropoff address is required":
		return !targets[importer.AttrDropoffAddress] && !targets[importer.AttrDropoffLine1]
	case "trip date is required":
		return !targets[importer.AttrTripDate]
	case "patient name is required":
		return !targets[importer.AttrFullName] && !targets[importer.AttrFirstName] && !targets[importer.AttrLastName]
	}
	return false
}
