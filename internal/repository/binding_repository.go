package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amity-app/amity-service/internal/domain"
)

// BindingRepository owns the contact-person column on communities and
// buildings. Bind operations are single-row read-modify-write updates;
// UnbindAll clears both tables inside one transaction so a partially
// unbound identity is never visible.
type BindingRepository interface {
	UnassignedCommunities(ctx context.Context) ([]domain.ResourceRef, error)
	UnassignedBuildings(ctx context.Context, communityID *string) ([]domain.ResourceRef, error)
	BindCommunityContact(ctx context.Context, communityID, identityID string) (bool, error)
	BindBuildingContact(ctx context.Context, buildingID, identityID string) (bool, error)
	UnbindAll(ctx context.Context, identityID string) error
}

type bindingRepository struct {
	pool *pgxpool.Pool
}

// NewBindingRepository constructs the repository.
func NewBindingRepository(pool *pgxpool.Pool) BindingRepository {
	return &bindingRepository{pool: pool}
}

func (r *bindingRepository) unassigned(ctx context.Context, query string, args ...any) ([]domain.ResourceRef, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ResourceRef
	for rows.Next() {
		var ref domain.ResourceRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	return result, rows.Err()
}

func (r *bindingRepository) UnassignedCommunities(ctx context.Context) ([]domain.ResourceRef, error) {
	const query = `
        SELECT id, name FROM communities
        WHERE contact_person IS NULL
        ORDER BY name, id`
	return r.unassigned(ctx, query)
}

func (r *bindingRepository) UnassignedBuildings(ctx context.Context, communityID *string) ([]domain.ResourceRef, error) {
	if communityID != nil {
		const query = `
            SELECT id, name FROM buildings
            WHERE contact_person IS NULL AND community_id=$1
            ORDER BY name, id`
		return r.unassigned(ctx, query, *communityID)
	}
	const query = `
        SELECT id, name FROM buildings
        WHERE contact_person IS NULL
        ORDER BY name, id`
	return r.unassigned(ctx, query)
}

func (r *bindingRepository) BindCommunityContact(ctx context.Context, communityID, identityID string) (bool, error) {
	const query = `UPDATE communities SET contact_person=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, identityID, communityID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *bindingRepository) BindBuildingContact(ctx context.Context, buildingID, identityID string) (bool, error) {
	const query = `UPDATE buildings SET contact_person=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, identityID, buildingID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *bindingRepository) UnbindAll(ctx context.Context, identityID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`UPDATE communities SET contact_person=NULL, updated_at=NOW() WHERE contact_person=$1`,
		identityID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE buildings SET contact_person=NULL, updated_at=NOW() WHERE contact_person=$1`,
		identityID,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
