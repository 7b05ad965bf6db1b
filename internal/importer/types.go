// Package importer provides the bulk trip import engine: a template-driven
// pipeline that normalizes broker trip manifests into canonical trip rows,
// validates them, supports interactive correction, and commits the error-free
// subset as patient/trip records. This package has no HTTP dependencies and
// can be driven by any frontend.
package importer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
)

// Canonical attribute names. Every broker column that maps at all maps onto
// one of these; empty string means absent everywhere downstream.
const (
	AttrFirstName       = "first_name"
	AttrLastName        = "last_name"
	AttrFullName        = "full_name"
	AttrPhone           = "phone"
	AttrDateOfBirth     = "date_of_birth"
	AttrPickupLine1     = "pickup_line1"
	AttrPickupLine2     = "pickup_line2"
	AttrPickupCity      = "pickup_city"
	AttrPickupState     = "pickup_state"
	AttrPickupZip       = "pickup_zip"
	AttrPickupAddress   = "pickup_address"
	AttrDropoffLine1    = "dropoff_line1"
	AttrDropoffLine2    = "dropoff_line2"
	AttrDropoffCity     = "dropoff_city"
	AttrDropoffState    = "dropoff_state"
	AttrDropoffZip      = "dropoff_zip"
	AttrDropoffAddress  = "dropoff_address"
	AttrTripDate        = "trip_date"
	AttrPickupTime      = "pickup_time"
	AttrAppointmentTime = "appointment_time"
	AttrMiles           = "miles"
	AttrRideMinutes     = "ride_minutes"
	AttrTripType        = "trip_type"
	AttrNotes           = "notes"
	AttrExternalTripID  = "external_trip_id"
	AttrMemberID        = "member_id"
)

// Sentinel errors for the import taxonomy.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("empty file")
	ErrNoValidRows       = errors.New("no valid rows to commit")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrRowOutOfRange     = errors.New("row index out of range")
	ErrUnknownAttribute  = errors.New("unknown attribute")
	ErrFileTooLarge      = errors.New("file too large")
)

// TemplateField describes one column of a broker manifest: the header the
// partner uses, whether the column must carry a value, and which canonical
// attribute it maps onto. Fields with an empty Target are retained only in the
// raw snapshot and never mapped.
type TemplateField struct {
	Column   string
	Target   string
	Required bool
}

// BrokerTemplate is the declarative schema for one referral partner's file
// layout. Templates are pure data: supporting a new partner is a registry
// addition, never a parser/mapper/validator change.
type BrokerTemplate struct {
	ID     string
	Name   string
	Fields []TemplateField
}

// Headers returns the partner's column headers in template order.
func (t BrokerTemplate) Headers() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// RawRow is one record of the uploaded manifest as parsed: header -> cell,
// before any template is applied. Line is 1-based in the source file.
type RawRow struct {
	Line   int
	Values map[string]string
}

// ImportRow is the canonical trip record every partner's raw row normalizes
// into. All attributes are optional; empty string and missing source column
// are the same "absent" state. Errors holds the current validation error list
// and is the sole commit-eligibility signal: a row commits iff it is empty.
type ImportRow struct {
	FirstName       string
	LastName        string
	FullName        string
	Phone           string
	DateOfBirth     string
	PickupLine1     string
	PickupLine2     string
	PickupCity      string
	PickupState     string
	PickupZip       string
	PickupAddress   string
	DropoffLine1    string
	DropoffLine2    string
	DropoffCity     string
	DropoffState    string
	DropoffZip      string
	DropoffAddress  string
	TripDate        string
	PickupTime      string
	AppointmentTime string
	Miles           string
	RideMinutes     string
	TripType        string
	Notes           string
	ExternalTripID  string
	MemberID        string

	Raw    RawRow
	Errors []string
}

// Valid reports commit eligibility.
func (r *ImportRow) Valid() bool { return len(r.Errors) == 0 }

// attrFields maps canonical attribute names to accessors. Mapper and the
// review store address attributes by name through this table.
var attrFields = map[string]func(*ImportRow) *string{
	AttrFirstName:       func(r *ImportRow) *string { return &r.FirstName },
	AttrLastName:        func(r *ImportRow) *string { return &r.LastName },
	AttrFullName:        func(r *ImportRow) *string { return &r.FullName },
	AttrPhone:           func(r *ImportRow) *string { return &r.Phone },
	AttrDateOfBirth:     func(r *ImportRow) *string { return &r.DateOfBirth },
	AttrPickupLine1:     func(r *ImportRow) *string { return &r.PickupLine1 },
	AttrPickupLine2:     func(r *ImportRow) *string { return &r.PickupLine2 },
	AttrPickupCity:      func(r *ImportRow) *string { return &r.PickupCity },
	AttrPickupState:     func(r *ImportRow) *string { return &r.PickupState },
	AttrPickupZip:       func(r *ImportRow) *string { return &r.PickupZip },
	AttrPickupAddress:   func(r *ImportRow) *string { return &r.PickupAddress },
	AttrDropoffLine1:    func(r *ImportRow) *string { return &r.DropoffLine1 },
	AttrDropoffLine2:    func(r *ImportRow) *string { return &r.DropoffLine2 },
	AttrDropoffCity:     func(r *ImportRow) *string { return &r.DropoffCity },
	AttrDropoffState:    func(r *ImportRow) *string { return &r.DropoffState },
	AttrDropoffZip:      func(r *ImportRow) *string { return &r.DropoffZip },
	AttrDropoffAddress:  func(r *ImportRow) *string { return &r.DropoffAddress },
	AttrTripDate:        func(r *ImportRow) *string { return &r.TripDate },
	AttrPickupTime:      func(r *ImportRow) *string { return &r.PickupTime },
	AttrAppointmentTime: func(r *ImportRow) *string { return &r.AppointmentTime },
	AttrMiles:           func(r *ImportRow) *string { return &r.Miles },
	AttrRideMinutes:     func(r *ImportRow) *string { return &r.RideMinutes },
	AttrTripType:        func(r *ImportRow) *string { return &r.TripType },
	AttrNotes:           func(r *ImportRow) *string { return &r.Notes },
	AttrExternalTripID:  func(r *ImportRow) *string { return &r.ExternalTripID },
	AttrMemberID:        func(r *ImportRow) *string { return &r.MemberID },
}

// KnownAttribute reports whether name is a canonical attribute.
func KnownAttribute(name string) bool {
	_, ok := attrFields[name]
	return ok
}

// Get returns the value of a canonical attribute by name. Returns false for
// unknown attribute names.
func (r *ImportRow) Get(name string) (string, bool) {
	f, ok := attrFields[name]
	if !ok {
		return "", false
	}
	return *f(r), true
}

// Set assigns a canonical attribute by name, trimming the value so an
// all-whitespace edit normalizes to absent. Returns false for unknown names.
func (r *ImportRow) Set(name, value string) bool {
	f, ok := attrFields[name]
	if !ok {
		return false
	}
	*f(r) = CleanCell(value)
	return true
}

// Attributes returns the non-empty canonical attributes as a map, for API
// payloads and previews.
func (r *ImportRow) Attributes() map[string]string {
	out := make(map[string]string)
	for name, f := range attrFields {
		if v := *f(r); v != "" {
			out[name] = v
		}
	}
	return out
}

// Patient is the persisted patient identity the commit pipeline resolves
// trips against, scoped to one organization.
type Patient struct {
	ID          pgtype.UUID
	OrgID       string
	FirstName   string
	LastName    string
	Phone       pgtype.Text
	DateOfBirth pgtype.Date
}

// NewPatient carries the fields used to create a patient from an import row.
type NewPatient struct {
	FirstName   string
	LastName    string
	Phone       pgtype.Text
	DateOfBirth pgtype.Date
}

// TripDraft is a trip built from one error-free row and a resolved patient,
// ready for the batched insert.
type TripDraft struct {
	PatientID      pgtype.UUID
	OrgID          string
	PickupAddress  string
	DropoffAddress string
	ScheduledAt    pgtype.Timestamp
	TripType       string
	Miles          pgtype.Numeric
	RideMinutes    pgtype.Numeric
	Status         string
	Notes          pgtype.Text
	ExternalTripID pgtype.Text
}

// Trip is the persisted trip record returned from the batched insert.
type Trip struct {
	ID             pgtype.UUID
	PatientID      pgtype.UUID
	OrgID          string
	PickupAddress  string
	DropoffAddress string
	ScheduledAt    pgtype.Timestamp
	TripType       string
	Miles          pgtype.Numeric
	RideMinutes    pgtype.Numeric
	Status         string
}

// Store is the persistence collaborator contract. The engine consumes it; it
// is implemented over PostgreSQL in internal/database and by fakes in tests.
type Store interface {
	// FindPatients matches patients in scope by case-insensitive exact
	// first/last name.
	FindPatients(ctx context.Context, orgID, firstName, lastName string) ([]Patient, error)
	// CreatePatient inserts a patient and returns it with its assigned ID.
	CreatePatient(ctx context.Context, orgID string, p NewPatient) (Patient, error)
	// InsertTrips performs one all-or-nothing batched insert.
	InsertTrips(ctx context.Context, trips []TripDraft) ([]Trip, error)
}
