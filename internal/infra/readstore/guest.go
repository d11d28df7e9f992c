package readstore

import (
	"context"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

const findGuestByIDSQL = `
SELECT id, name, email, is_blacklisted
FROM guests
WHERE id = $1
`

type GuestReadStore struct {
	db db.DBTX
}

func NewGuestReadStore(dbtx db.DBTX) *GuestReadStore {
	return &GuestReadStore{db: dbtx}
}

func (r *GuestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.GuestSnapshot, error) {
	var snap shared.GuestSnapshot
	err := r.db.QueryRow(ctx, findGuestByIDSQL, id).Scan(
		&snap.ID, &snap.Name, &snap.Email, &snap.Blacklisted,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find guest by ID", err)
	}
	return &snap, nil
}
