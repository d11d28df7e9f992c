package readstore

import (
	"context"

	"staybook/internal/domain/restriction"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findRestrictionsSQL = `
SELECT id, property_id, restriction_type, int_value, days_of_week, reason,
       start_date, end_date, is_active
FROM restrictions
WHERE is_active = true
  AND (property_id = $1 OR property_id IS NULL)
ORDER BY id
`

type RestrictionReadStore struct {
	db db.DBTX
}

func NewRestrictionReadStore(dbtx db.DBTX) *RestrictionReadStore {
	return &RestrictionReadStore{db: dbtx}
}

func (r *RestrictionReadStore) FindForProperty(ctx context.Context, propertyID uuid.UUID) (restriction.Set, error) {
	rows, err := r.db.Query(ctx, findRestrictionsSQL, propertyID)
	if err != nil {
		return restriction.Set{}, infra.WrapRepoErr("failed to load restrictions", err)
	}
	defer rows.Close()

	var set restriction.Set
	for rows.Next() {
		var (
			meta            restriction.RuleMeta
			propertyIDCol   pgtype.UUID
			restrictionType string
			intValue        pgtype.Int4
			daysOfWeek      pgtype.Int4
			reason          pgtype.Text
			startDate       pgtype.Date
			endDate         pgtype.Date
		)
		if err := rows.Scan(
			&meta.ID, &propertyIDCol, &restrictionType, &intValue, &daysOfWeek, &reason,
			&startDate, &endDate, &meta.Active,
		); err != nil {
			return restriction.Set{}, infra.WrapRepoErr("failed to scan restriction", err)
		}

		meta.PropertyID = pgconv.UUIDPtrFromPgtype(propertyIDCol)
		meta.Window = daterange.Window{
			Start: pgconv.DatePtrFromPgtype(startDate),
			End:   pgconv.DatePtrFromPgtype(endDate),
		}

		value := 0
		if v := pgconv.Int4PtrFromPgtype(intValue); v != nil {
			value = int(*v)
		}
		var allowed restriction.WeekdaySet
		if v := pgconv.Int4PtrFromPgtype(daysOfWeek); v != nil {
			allowed = restriction.WeekdaySet(*v)
		}

		switch restriction.Kind(restrictionType) {
		case restriction.KindMinStay:
			set.MinStay = append(set.MinStay, restriction.MinStayRule{RuleMeta: meta, Nights: value})
		case restriction.KindMaxStay:
			set.MaxStay = append(set.MaxStay, restriction.MaxStayRule{RuleMeta: meta, Nights: value})
		case restriction.KindBlackout:
			var why string
			if p := pgconv.StringPtrFromPgtype(reason); p != nil {
				why = *p
			}
			set.Blackout = append(set.Blackout, restriction.BlackoutRule{RuleMeta: meta, Reason: why})
		case restriction.KindMaxGuests:
			set.MaxGuests = append(set.MaxGuests, restriction.MaxGuestsRule{RuleMeta: meta, Limit: value})
		case restriction.KindAdvanceBooking:
			set.AdvanceBooking = append(set.AdvanceBooking, restriction.AdvanceBookingRule{RuleMeta: meta, MaxDays: value})
		case restriction.KindCheckInDays:
			set.CheckInDays = append(set.CheckInDays, restriction.CheckInDaysRule{RuleMeta: meta, Allowed: allowed})
		case restriction.KindCheckOutDays:
			set.CheckOutDays = append(set.CheckOutDays, restriction.CheckOutDaysRule{RuleMeta: meta, Allowed: allowed})
		default:
			// Unknown categories are ignored rather than blocking bookings.
		}
	}
	if err := rows.Err(); err != nil {
		return restriction.Set{}, infra.WrapRepoErr("failed to read restrictions", err)
	}
	return set, nil
}
