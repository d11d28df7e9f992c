package readstore

import (
	"context"
	"encoding/json"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

const findAuditByBookingSQL = `
SELECT id, booking_id, action, entity_type, entity_id,
       old_values, new_values, changed_fields, created_at
FROM audit_logs
WHERE booking_id = $1
ORDER BY created_at, id
`

type AuditReadStore struct {
	db db.DBTX
}

func NewAuditReadStore(dbtx db.DBTX) *AuditReadStore {
	return &AuditReadStore{db: dbtx}
}

func (r *AuditReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*queries.AuditEntryView, error) {
	rows, err := r.db.Query(ctx, findAuditByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load audit trail", err)
	}
	defer rows.Close()

	var entries []*queries.AuditEntryView
	for rows.Next() {
		var (
			entry     queries.AuditEntryView
			oldValues []byte
			newValues []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.BookingID, &entry.Action, &entry.EntityType, &entry.EntityID,
			&oldValues, &newValues, &entry.ChangedFields, &entry.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit entry", err)
		}
		if len(oldValues) > 0 {
			if err := json.Unmarshal(oldValues, &entry.OldValues); err != nil {
				return nil, infra.WrapRepoErr("failed to decode audit old values", err)
			}
		}
		if len(newValues) > 0 {
			if err := json.Unmarshal(newValues, &entry.NewValues); err != nil {
				return nil, infra.WrapRepoErr("failed to decode audit new values", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read audit trail", err)
	}
	return entries, nil
}
