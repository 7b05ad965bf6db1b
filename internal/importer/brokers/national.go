package brokers

import "github.com/Yahia89/meditrans/internal/importer"

// National transportation brokers. These are the highest-volume partners and
// the most complete files: split name and address parts, member identifiers,
// and a level-of-service column, though each broker names all of it
// differently.

func init() {
	registerModivcare()
	registerMTM()
	registerAccess2Care()
	registerVeyo()
	registerSaferide()
	registerAmericanLogistics()
	registerOneCall()
	registerVerida()
}

func registerModivcare() {
	importer.Register(importer.BrokerTemplate{
		ID:   "modivcare_standard",
		Name: "Modivcare Trip Manifest",
		Fields: []importer.TemplateField{
			{Column: "Member First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Member Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Member Phone", Target: importer.AttrPhone},
			{Column: "Member DOB", Target: importer.AttrDateOfBirth},
			{Column: "Member ID", Target: importer.AttrMemberID},
			{Column: "Trip Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Pickup Time", Target: importer.AttrPickupTime},
			{Column: "Pickup Address", Target: importer.AttrPickupLine1, Required: true},
			{Column: "Pickup City", Target: importer.AttrPickupCity},
			{Column: "Pickup State", Target: importer.AttrPickupState},
			{Column: "Pickup Zip", Target: importer.AttrPickupZip},
			{Column: "Dropoff Address", Target: importer.AttrDropoffLine1, Required: true},
			{Column: "Dropoff City", Target: importer.AttrDropoffCity},
			{Column: "Dropoff State", Target: importer.AttrDropoffState},
			{Column: "Dropoff Zip", Target: importer.AttrDropoffZip},
			{Column: "LOS", Target: importer.AttrTripType},
			{Column: "Trip Mileage", Target: importer.AttrMiles},
			{Column: "Trip ID", Target: importer.AttrExternalTripID},
			{Column: "Special Needs"},
			{Column: "Standing Order"},
		},
	})
}

func registerMTM() {
	importer.Register(importer.BrokerTemplate{
		ID:   "mtm_daily",
		Name: "MTM Daily Trip File",
		Fields: []importer.TemplateField{
			{Column: "First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Phone Number", Target: importer.AttrPhone},
			{Column: "DOB", Target: importer.AttrDateOfBirth},
			{Column: "Date of Service", Target: importer.AttrTripDate, Required: true},
			{Column: "Appt. Time", Target: importer.AttrAppointmentTime},
			{Column: "Pick Up Street", Target: importer.AttrPickupLine1, Required: true},
			{Column: "Pick Up City", Target: importer.AttrPickupCity},
			{Column: "Pick Up State", Target: importer.AttrPickupState},
			{Column: "Pick Up Zip", Target: importer.AttrPickupZip},
			{Column: "Drop Off Street", Target: importer.AttrDropoffLine1, Required: true},
			{Column: "Drop Off City", Target: importer.AttrDropoffCity},
			{Column: "Drop Off State", Target: importer.AttrDropoffState},
			{Column: "Drop Off Zip", Target: importer.AttrDropoffZip},
			{Column: "Level of Service", Target: importer.AttrTripType},
			{Column: "Miles", Target: importer.AttrMiles},
			{Column: "Trip Number", Target: importer.AttrExternalTripID},
			{Column: "Trip Cost"},
		},
	})
}

func registerAccess2Care() {
	// Access2Care exports composite addresses and a single rider name column;
	// it has no DOB at all.
	importer.Register(importer.BrokerTemplate{
		ID:   "access2care_export",
		Name: "Access2Care Reservation Export",
		Fields: []importer.TemplateField{
			{Column: "Member Name", Target: importer.AttrFullName, Required: true},
			{Column: "Member Phone", Target: importer.AttrPhone},
			{Column: "Service Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Scheduled Pickup", Target: importer.AttrPickupTime},
			{Column: "Pickup Location", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Drop-off Location", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Mode", Target: importer.AttrTripType},
			{Column: "Est Miles", Target: importer.AttrMiles},
			{Column: "Reservation ID", Target: importer.AttrExternalTripID},
			{Column: "Health Plan"},
		},
	})
}

func registerVeyo() {
	importer.Register(importer.BrokerTemplate{
		ID:   "veyo_manifest",
		Name: "Veyo Trip Manifest",
		Fields: []importer.TemplateField{
			{Column: "Rider First", Target: importer.AttrFirstName, Required: true},
			{Column: "Rider Last", Target: importer.AttrLastName, Required: true},
			{Column: "Rider Phone", Target: importer.AttrPhone},
			{Column: "Member #", Target: importer.AttrMemberID},
			{Column: "Trip Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Pickup Window Start", Target: importer.AttrPickupTime},
			{Column: "Pickup Location", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Dropoff Location", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Vehicle Type", Target: importer.AttrTripType},
			{Column: "Distance (mi)", Target: importer.AttrMiles},
			{Column: "Duration (min)", Target: importer.AttrRideMinutes},
			{Column: "Trip GUID", Target: importer.AttrExternalTripID},
		},
	})
}

func registerSaferide() {
	importer.Register(importer.BrokerTemplate{
		ID:   "saferide_export",
		Name: "SafeRide Health Export",
		Fields: []importer.TemplateField{
			{Column: "Passenger Name", Target: importer.AttrFullName, Required: true},
			{Column: "Passenger Phone", Target: importer.AttrPhone},
			{Column: "Ride Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Ride Time", Target: importer.AttrPickupTime},
			{Column: "Origin Address", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Destination Address", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Ride Type", Target: importer.AttrTripType},
			{Column: "Ride Notes", Target: importer.AttrNotes},
			{Column: "Ride ID", Target: importer.AttrExternalTripID},
		},
	})
}

func registerAmericanLogistics() {
	importer.Register(importer.BrokerTemplate{
		ID:   "alc_trip_roster",
		Name: "American Logistics Trip Roster",
		Fields: []importer.TemplateField{
			{Column: "Client First", Target: importer.AttrFirstName, Required: true},
			{Column: "Client Last", Target: importer.AttrLastName, Required: true},
			{Column: "Client DOB", Target: importer.AttrDateOfBirth},
			{Column: "Service Date", Target: importer.AttrTripDate, Required: true},
			{Column: "PU Time", Target: importer.AttrPickupTime},
			{Column: "PU Address 1", Target: importer.AttrPickupLine1, Required: true},
			{Column: "PU Address 2", Target: importer.AttrPickupLine2},
			{Column: "PU City", Target: importer.AttrPickupCity},
			{Column: "PU ST", Target: importer.AttrPickupState},
			{Column: "PU Zip", Target: importer.AttrPickupZip},
			{Column: "DO Address 1", Target: importer.AttrDropoffLine1, Required: true},
			{Column: "DO Address 2", Target: importer.AttrDropoffLine2},
			{Column: "DO City", Target: importer.AttrDropoffCity},
			{Column: "DO ST", Target: importer.AttrDropoffState},
			{Column: "DO Zip", Target: importer.AttrDropoffZip},
			{Column: "Mobility", Target: importer.AttrTripType},
			{Column: "Trip Miles", Target: importer.AttrMiles},
			{Column: "Confirmation #", Target: importer.AttrExternalTripID},
		},
	})
}

func registerOneCall() {
	// Workers' comp referrals: claim metadata rides along unmapped.
	importer.Register(importer.BrokerTemplate{
		ID:   "onecall_referrals",
		Name: "One Call Transport Referrals",
		Fields: []importer.TemplateField{
			{Column: "First", Target: importer.AttrFirstName, Required: true},
			{Column: "Last", Target: importer.AttrLastName, Required: true},
			{Column: "Phone", Target: importer.AttrPhone},
			{Column: "Appointment Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Appointment Time", Target: importer.AttrAppointmentTime},
			{Column: "Pickup", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Destination", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Transport Level", Target: importer.AttrTripType},
			{Column: "Referral #", Target: importer.AttrExternalTripID},
			{Column: "Claim Number"},
			{Column: "Adjuster"},
		},
	})
}

func registerVerida() {
	importer.Register(importer.BrokerTemplate{
		ID:   "verida_roster",
		Name: "Verida Member Roster",
		Fields: []importer.TemplateField{
			{Column: "Member First Name", Target: importer.AttrFirstName, Required: true},
			{Column: "Member Last Name", Target: importer.AttrLastName, Required: true},
			{Column: "Member ID", Target: importer.AttrMemberID, Required: true},
			{Column: "Trip Date", Target: importer.AttrTripDate, Required: true},
			{Column: "Negotiated Pickup", Target: importer.AttrPickupTime},
			{Column: "Origin Street", Target: importer.AttrPickupLine1, Required: true},
			{Column: "Origin City", Target: importer.AttrPickupCity},
			{Column: "Origin State", Target: importer.AttrPickupState},
			{Column: "Origin Zip", Target: importer.AttrPickupZip},
			{Column: "Dest Street", Target: importer.AttrDropoffLine1, Required: true},
			{Column: "Dest City", Target: importer.AttrDropoffCity},
			{Column: "Dest State", Target: importer.AttrDropoffState},
			{Column: "Dest Zip", Target: importer.AttrDropoffZip},
			{Column: "LOS", Target: importer.AttrTripType},
			{Column: "Authorized Miles", Target: importer.AttrMiles},
			{Column: "Leg ID", Target: importer.AttrExternalTripID},
		},
	})
}
