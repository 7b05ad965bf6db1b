package brokers

import "github.com/Yahia89/meditrans/internal/importer"

// Facility manifests: dialysis clinics and hospital discharge desks that send
// their own patient schedules instead of a broker file. Pickup is the
// patient's home for clinic runs and the facility for discharges.

func init() {
	registerDaVita()
	registerFresenius()
	registerHospitalDischarge()
}

func registerDaVita() {
	importer.Register(importer.BrokerTemplate{
		ID:   "davita_schedule",
		Name: "DaVita Dialysis Schedule",
		Fields: []importer.TemplateField{
			{Column: "Patient Name", Target: importer.AttrFullName, Required: true},
			{Column: "Patient Phone", Target: importer.AttrPhone},
			{Column: "Treatment Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Chair Time", Target: importer.AttrAppointmentTime, Required: true},
			{Column: "Home Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Clinic Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Clinic Name"},
			{Column: "Transport Mode", Target: importer.AttrTripType},
			{Column: "Shift"},
		},
	})
}

func registerFresenius() {
	importer.Register(importer.BrokerTemplate{
		ID:   "fresenius_roster",
		Name: "Fresenius Kidney Care Roster",
		Fields: []importer.TemplateField{
			{Column: "First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Contact Phone", Target: importer.AttrPhone},
			{Column: "Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Appointment", Target: importer.AttrAppointmentTime},
			{Column: "Residence", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Center Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Center"},
			{Column: "Mobility", Target: importer.AttrTripType},
			{Column: "Notes", Target: importer.AttrNotes},
		},
	})
}

func registerHospitalDischarge() {
	importer.Register(importer.BrokerTemplate{
		ID:   "hospital_discharge",
		Name: "Hospital Discharge Transport List",
		Fields: []importer.TemplateField{
			{Column: "Patient First", Target: importer.AttrFirstName, Required: true},
			{Column: "Patient Last", Target: importer.AttrLastName, Required: true},
			{Column: "MRN", Target: importer.AttrMemberID},
			{Column: "Discharge Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Discharge Time", Target: importer.AttrPickupTime},
			{Column: "Facility Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Home Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Transport Type", Target: importer.AttrTripType},
			{Column: "Equipment"},
			{Column: "Unit"},
		},
	})
}
