package importer

// commit.go turns validated rows into persisted patient and trip records.
//
// Patient resolution is sequential and row-isolated: each row yields an
// explicit resolution (patient id or skip reason), and a failed creation
// skips that row without aborting the manifest. Trip insertion is the
// opposite: one batched all-or-nothing write, because patient resolution is
// cheap and idempotent to retry per row while a partial trip batch would
// leave an inconsistent result.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultTripType is assigned when a manifest carries no level of service.
const DefaultTripType = "ambulatory"

// StatusPending is the initial status of every imported trip.
const StatusPending = "pending"

// SkippedRow records one row dropped during patient resolution. Skips are
// part of the commit result so the confirmation surface can disclose them.
type SkippedRow struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CommitResult is the outcome of a successful commit.
type CommitResult struct {
	Inserted int          `json:"insertedCount"`
	Trips    []Trip       `json:"trips"`
	Skipped  []SkippedRow `json:"skipped,omitempty"`
}

// resolution is the explicit per-row outcome of patient resolution.
type resolution struct {
	row       *ImportRow
	patientID pgtype.UUID
	skip      string // non-empty means the row was skipped
}

// Commit resolves patient identity for every error-free row and performs the
// batched trip insert within the given organization scope. It returns
// ErrNoValidRows when nothing is eligible; any batch-insert failure fails the
// whole commit.
func Commit(ctx context.Context, rows []*ImportRow, orgID string, store Store) (*CommitResult, error) {
	eligible := make([]*ImportRow, 0, len(rows))
	for _, row := range rows {
		if row.Valid() {
			eligible = append(eligible, row)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoValidRows
	}

	logger := slog.Default().With("org_id", orgID, "rows", len(eligible))

	resolutions := resolvePatients(ctx, eligible, orgID, store, logger)

	result := &CommitResult{}
	drafts := make([]TripDraft, 0, len(resolutions))
	for _, res := range resolutions {
		if res.skip != "" {
			result.Skipped = append(result.Skipped, SkippedRow{
				Line:   res.row.Raw.Line,
				Name:   patientName(res.row),
				Reason: res.skip,
			})
			continue
		}
		drafts = append(drafts, buildTripDraft(res.row, res.patientID, orgID))
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: all rows skipped during patient resolution", ErrNoValidRows)
	}

	trips, err := store.InsertTrips(ctx, drafts)
	if err != nil {
		logger.Error("trip batch insert failed", "error", err)
		return nil, fmt.Errorf("insert trips: %w", err)
	}

	result.Inserted = len(trips)
	result.Trips = trips

	logger.Info("commit complete",
		"inserted", result.Inserted,
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// resolvePatients resolves each row sequentially, caching resolved ids by
// lowercased (first, last) so same-named rows within one commit share one
// patient even when the directory lookup preceded its creation.
func resolvePatients(ctx context.Context, rows []*ImportRow, orgID string, store Store, logger *slog.Logger) []resolution {
	cache := make(map[string]pgtype.UUID)
	out := make([]resolution, 0, len(rows))

	for _, row := range rows {
		first, last := nameParts(row)
		if first == "" && last == "" {
			out = append(out, resolution{row: row, skip: "no patient name"})
			continue
		}

		key := strings.ToLower(first) + "\x00" + strings.ToLower(last)
		if id, ok := cache[key]; ok {
			out = append(out, resolution{row: row, patientID: id})
			continue
		}

		id, err := resolveOne(ctx, orgID, first, last, row, store)
		if err != nil {
			// Row-level isolation: one failed identity must not abort the
			// rest of the manifest.
			logger.Warn("patient resolution skipped row",
				"line", row.Raw.Line,
				"patient", patientName(row),
				"error", err,
			)
			out = append(out, resolution{row: row, skip: err.Error()})
			continue
		}

		cache[key] = id
		out = append(out, resolution{row: row, patientID: id})
	}

	return out
}

// resolveOne matches an existing patient by case-insensitive exact name,
// first match wins, or creates one from the row's fields.
func resolveOne(ctx context.Context, orgID, first, last string, row *ImportRow, store Store) (pgtype.UUID, error) {
	matches, err := store.FindPatients(ctx, orgID, first, last)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("find patient: %w", err)
	}
	if len(matches) > 0 {
		return matches[0].ID, nil
	}

	created, err := store.CreatePatient(ctx, orgID, NewPatient{
		FirstName:   first,
		LastName:    last,
		Phone:       ToPgText(row.Phone),
		DateOfBirth: ToPgDate(row.DateOfBirth),
	})
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("create patient: %w", err)
	}
	return created.ID, nil
}

func buildTripDraft(row *ImportRow, patientID pgtype.UUID, orgID string) TripDraft {
	tripType := row.TripType
	if tripType == "" {
		tripType = DefaultTripType
	}

	// Pickup time wins over appointment time for the scheduled timestamp;
	// with neither, the timestamp is date-only.
	timeOfDay := row.PickupTime
	if timeOfDay == "" {
		timeOfDay = row.AppointmentTime
	}

	return TripDraft{
		PatientID:      patientID,
		OrgID:          orgID,
		PickupAddress:  row.PickupAddress,
		DropoffAddress: row.DropoffAddress,
		ScheduledAt:    ToPgTimestamp(row.TripDate, timeOfDay),
		TripType:       tripType,
		Miles:          ToPgNumeric(row.Miles),
		RideMinutes:    ToPgNumeric(row.RideMinutes),
		Status:         StatusPending,
		Notes:          ToPgText(row.Notes),
		ExternalTripID: ToPgText(row.ExternalTripID),
	}
}

// nameParts returns the first/last name used for patient matching. When only
// a full name is present, the first token is the first name and the remainder
// the last name.
func nameParts(row *ImportRow) (first, last string) {
	if row.FirstName != "" || row.LastName != "" {
		return row.FirstName, row.LastName
	}
	fields := strings.Fields(row.FullName)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

func patientName(row *ImportRow) string {
	if row.FullName != "" {
		return row.FullName
	}
	return strings.TrimSpace(row.FirstName + " " + row.LastName)
}
