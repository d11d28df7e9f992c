package repository

import (
	"context"
	"encoding/json"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/usecase/shared"
)

const insertAuditLogSQL = `
INSERT INTO audit_logs (
	booking_id, action, entity_type, entity_id, old_values, new_values, changed_fields, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
`

type AuditRepository struct{}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Record writes the audit entry inside a savepoint. A failed insert
// would otherwise abort the enclosing Postgres transaction and take the
// booking write down with it; rolling back to the savepoint keeps the
// transaction usable so callers can treat the audit as best-effort.
func (r *AuditRepository) Record(ctx context.Context, tx db.DBTX, entry shared.AuditEntry) error {
	oldValues, err := marshalValues(entry.OldValues)
	if err != nil {
		return infra.WrapRepoErr("failed to encode audit old values", err, infra.KindDBFailure)
	}
	newValues, err := marshalValues(entry.NewValues)
	if err != nil {
		return infra.WrapRepoErr("failed to encode audit new values", err, infra.KindDBFailure)
	}

	if _, err = tx.Exec(ctx, "SAVEPOINT audit_record"); err != nil {
		return infra.WrapRepoErr("failed to create audit savepoint", err)
	}

	_, err = tx.Exec(ctx, insertAuditLogSQL,
		entry.BookingID, entry.Action, entry.EntityType, entry.EntityID,
		oldValues, newValues, entry.ChangedFields,
	)
	if err != nil {
		if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT audit_record"); rbErr != nil {
			return infra.WrapRepoErr("failed to roll back audit savepoint", rbErr)
		}
		return infra.WrapRepoErr("failed to record audit log", err)
	}

	if _, err = tx.Exec(ctx, "RELEASE SAVEPOINT audit_record"); err != nil {
		return infra.WrapRepoErr("failed to release audit savepoint", err)
	}
	return nil
}

func marshalValues(values map[string]any) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}
