package brokers

import "github.com/Yahia89/meditrans/internal/importer"

// State Medicaid programs. Fee-for-service files carry billing columns
// (procedure codes, modifiers) that stay raw-only; the MCO roster variant is
// closer to a broker file.

func init() {
	registerMedicaidFFS()
	registerMedicaidMCO()
	registerAHCCCS()
}

func registerMedicaidFFS() {
	importer.Register(importer.BrokerTemplate{
		ID:   "medicaid_ffs",
		Name: "Medicaid FFS Transport File",
		Fields: []importer.TemplateField{
			{Column: "Recipient First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Recipient Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Recipient ID", Target: importer.AttrMemberID, Required: true},
			{Column: "DOB", Target: importer.AttrDateOfBirth},
			{Column: "Date of Service", Target: importer.AttrTripDate, Required: true},
			{Column: "Origin Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Destination Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Mileage", Target: importer.AttrMiles},
			{Column: "Procedure Code"},
			{Column: "Modifier"},
			{Column: "Units"},
		},
	})
}

func registerMedicaidMCO() {
	importer.Register(importer.BrokerTemplate{
		ID:   "medicaid_mco_roster",
		Name: "Medicaid MCO Trip Roster",
		Fields: []importer.TemplateField{
			{Column: "Enrollee First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Enrollee Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Medicaid ID", Target: importer.AttrMemberID},
			{Column: "Phone", Target: importer.AttrPhone},
			{Column: "Trip Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Pickup Time", Target: importer.AttrPickupTime},
			{Column: "Pickup Street", Target: importer.AttrPickupLine1, Required: true},
			{Column: "Pickup City", Target: importer.AttrPickupCity},
			{Column: "Pickup State", Target: importer.AttrPickupState},
			{Column: "Pickup Zip", Target: importer.AttrPickupZip},
			{Column: "Dropoff Street", Target: importer.AttrDropoffLine1, Required: true},
			{Column: "Dropoff City", Target: importer.AttrDropoffCity},
			{Column: "Dropoff State", Target: importer.AttrDropoffState},
			{Column: "Dropoff Zip", Target: importer.AttrDropoffZip},
			{Column: "Level of Service", Target: importer.AttrTripType},
			{Column: "Authorization #"},
		},
	})
}

func registerAHCCCS() {
	importer.Register(importer.BrokerTemplate{
		ID:   "ahcccs_az_daily",
		Name: "AHCCCS Arizona Daily Trip File",
		Fields: []importer.TemplateField{
			{Column: "AHCCCS ID", Target: importer.AttrMemberID, Required: true},
			{Column: "Member First", Target: importer.AttrFirstName, Required: true},
			{Column: "Member Last", Target: importer.AttrLastName, Required: true},
			{Column: "Date of Birth", Target: importer.AttrDateOfBirth},
			{Column: "Service Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Pickup Time", Target: importer.AttrPickupTime},
			{Column: "Pickup Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Drop Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Escort"},
			{Column: "Trip Type", Target: importer.AttrTripType},
			{Column: "Billed Miles", Target: importer.AttrMiles},
		},
	})
}
