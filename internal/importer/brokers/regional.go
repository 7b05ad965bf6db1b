package brokers

import "github.com/Yahia89/meditrans/internal/importer"

// Regional health plans and ride coordinators. These files are thinner than
// the national brokers': several omit whole canonical areas (no dropoff, no
// phone), which the canonical-required validation pass surfaces per row.

func init() {
	registerCalOptima()
	registerLACare()
	registerHealthfirstNY()
	registerSunshineFL()
	registerRoundtrip()
	registerKaizen()
}

func registerCalOptima() {
	importer.Register(importer.BrokerTemplate{
		ID:   "caloptima_transport",
		Name: "CalOptima Transportation Request",
		Fields: []importer.TemplateField{
			{Column: "Member First", Target: importer.AttrFirstName, Required: true},
			{Column: "Member Last", Target: importer.AttrLastName, Required: true},
			{Column: "CIN", Target: importer.AttrMemberID, Required: true},
			{Column: "Birth Date", Target: importer.AttrDateOfBirth},
			{Column: "Transport Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Requested Time", Target: importer.AttrPickupTime},
			{Column: "Pickup Street", Target: importer.AttrPickupLine1, Required: true},
			{Column: "Pickup City", Target: importer.AttrPickupCity},
			{Column: "Pickup Zip", Target: importer.AttrPickupZip},
			{Column: "Destination Street", Target: importer.AttrDropoffLine1, Required: true},
			{Column: "Destination City", Target: importer.AttrDropoffCity},
			{Column: "Destination Zip", Target: importer.AttrDropoffZip},
			{Column: "Service Level", Target: importer.AttrTripType},
			{Column: "Auth Number"},
		},
	})
}

func registerLACare() {
	importer.Register(importer.BrokerTemplate{
		ID:   "lacare_ride_roster",
		Name: "L.A. Care Ride Roster",
		Fields: []importer.TemplateField{
			{Column: "Rider Name", Target: importer.AttrFullName, Required: true},
			{Column: "Rider Phone", Target: importer.AttrPhone},
			{Column: "Ride Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Pickup Time", Target: importer.AttrPickupTime},
			{Column: "From Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "To Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Wheelchair", Target: importer.AttrTripType},
			{Column: "Comments", Target: importer.AttrNotes},
		},
	})
}

func registerHealthfirstNY() {
	importer.Register(importer.BrokerTemplate{
		ID:   "healthfirst_ny_trips",
		Name: "Healthfirst NY Trip List",
		Fields: []importer.TemplateField{
			{Column: "Member Name", Target: importer.AttrFullName, Required: true},
			{Column: "Member ID", Target: importer.AttrMemberID},
			{Column: "Phone", Target: importer.AttrPhone},
			{Column: "DOB", Target: importer.AttrDateOfBirth},
			{Column: "Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Time", Target: importer.AttrAppointmentTime},
			{Column: "Pickup Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Appointment Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Plan"},
			{Column: "Borough"},
		},
	})
}

func registerSunshineFL() {
	// Sunshine's appointment list has no dropoff columns at all: the
	// destination is coordinated by phone. Every row needs a dropoff filled
	// in during review before it can commit.
	importer.Register(importer.BrokerTemplate{
		ID:   "sunshine_fl_appointments",
		Name: "Sunshine Health FL Appointment List",
		Fields: []importer.TemplateField{
			{Column: "Enrollee First", Target: importer.AttrFirstName, Required: true},
			{Column: "Enrollee Last", Target: importer.AttrLastName, Required: true},
			{Column: "Enrollee Phone", Target: importer.AttrPhone},
			{Column: "Appt Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Appt Time", Target: importer.AttrAppointmentTime},
			{Column: "Home Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Provider Name"},
			{Column: "Provider Phone"},
		},
	})
}

func registerRoundtrip() {
	importer.Register(importer.BrokerTemplate{
		ID:   "roundtrip_manifest",
		Name: "Roundtrip Ride Manifest",
		Fields: []importer.TemplateField{
			{Column: "Patient First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Patient Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Patient Phone", Target: importer.AttrPhone},
			{Column: "Ride Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Pickup Time", Target: importer.AttrPickupTime},
			{Column: "Pickup Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Destination", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Ride Type", Target: importer.AttrTripType},
			{Column: "Est. Mileage", Target: importer.AttrMiles},
			{Column: "Booking ID", Target: importer.AttrExternalTripID},
		},
	})
}

func registerKaizen() {
	importer.Register(importer.BrokerTemplate{
		ID:   "kaizen_health_export",
		Name: "Kaizen Health Trip Export",
		Fields: []importer.TemplateField{
			{Column: "Rider First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Rider Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Rider DOB", Target: importer.AttrDateOfBirth},
			{Column: "Trip Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Scheduled Time", Target: importer.AttrPickupTime},
			{Column: "Origin", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Destination", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Mobility Needs", Target: importer.AttrTripType},
			{Column: "Distance", Target: importer.AttrMiles},
			{Column: "Ride Duration", Target: importer.AttrRideMinutes},
			{Column: "Kaizen Trip ID", Target: importer.AttrExternalTripID},
			{Column: "Funding Source"},
		},
	})
}
