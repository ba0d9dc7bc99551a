package readstore

import (
	"context"

	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/pkg/pgconv"
	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
)

const findResourceByIDSQL = `
SELECT id, name, owner_id, hourly_rate_cents, open_hour, close_hour, created_at, updated_at
FROM resources
WHERE id = $1`

type ResourceReadStore struct{}

func NewResourceReadStore() *ResourceReadStore {
	return &ResourceReadStore{}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.ResourceView, error) {
	var v queries.ResourceView
	err := dbtx.QueryRow(ctx, findResourceByIDSQL, id).Scan(
		&v.ID, &v.Name, &v.OwnerID, &v.HourlyRateCents,
		&v.OpenHour, &v.CloseHour, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return &v, nil
}
