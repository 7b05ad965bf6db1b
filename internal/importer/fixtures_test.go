package importer

// Shared fixtures for the engine tests: one representative broker template
// with split name and pickup address parts, a single dropoff column, and a
// raw-only column that never maps.

func testTemplate() BrokerTemplate {
	return BrokerTemplate{
		ID:   "test_broker",
		Name: "Test Broker",
		Fields: []TemplateField{
			{Column: "First Name", Target: AttrFirstName, Required: true},
			{Column: "Last Name", Target: AttrLastName, Required: true},
			{Column: "Pickup Street", Target: AttrPickupLine1, Required: true},
			{Column: "Pickup City", Target: AttrPickupCity},
			{Column: "Pickup State", Target: AttrPickupState},
			{Column: "Pickup Zip", Target: AttrPickupZip},
			{Column: "Dropoff Address", Target: AttrDropoffAddress, Required: true},
			{Column: "Trip Date", Target: AttrTripDate, Required: true},
			{Column: "Pickup Time", Target: AttrPickupTime},
			{Column: "Miles", Target: AttrMiles},
			{Column: "Fund Code", Required: true}, // raw-only, never mapped
		},
	}
}

// validRawValues returns a complete raw row that passes validation under
// testTemplate.
func validRawValues() map[string]string {
	return map[string]string{
		"First Name":      "Jane",
		"Last Name":       "Doe",
		"Pickup Street":   "450 W Thomas Rd",
		"Pickup City":     "Phoenix",
		"Pickup State":    "AZ",
		"Pickup Zip":      "85013",
		"Dropoff Address": "1919 E Thomas Rd, Phoenix, AZ 85016",
		"Trip Date":       "03/14/2025",
		"Pickup Time":     "9:15 AM",
		"Miles":           "6.2",
		"Fund Code":       "F-100",
	}
}

// validRow builds a canonical row that is commit-eligible as-is.
func validRow(line int, first, last string) *ImportRow {
	row := &ImportRow{
		FirstName:    first,
		LastName:     last,
		PickupLine1:  "450 W Thomas Rd",
		PickupCity:   "Phoenix",
		DropoffLine1: "1919 E Thomas Rd",
		TripDate:     "03/14/2025",
		PickupTime:   "9:15 AM",
		Raw:          RawRow{Line: line},
	}
	Derive(row)
	return row
}
