package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amity-app/amity-service/internal/domain"
)

// BuildingRepository handles persistence for buildings.
type BuildingRepository interface {
	Create(ctx context.Context, building *domain.Building) error
	Update(ctx context.Context, building *domain.Building) error
	GetByID(ctx context.Context, id string) (*domain.Building, error)
	SetSafetyStatus(ctx context.Context, id string, status bool) error
	List(ctx context.Context, filter BuildingFilter) ([]domain.Building, error)
}

// BuildingFilter defines query params for building listing.
type BuildingFilter struct {
	CommunityID   *string
	ContactPerson *string
	Limit         int
	Offset        int
}

type buildingRepository struct {
	pool *pgxpool.Pool
}

// NewBuildingRepository instantiates the repository.
func NewBuildingRepository(pool *pgxpool.Pool) BuildingRepository {
	return &buildingRepository{pool: pool}
}

const buildingColumns = `id, community_id, name, state, address, phone_number, contact_person, safety_status, created_at, updated_at`

func scanBuilding(row pgx.Row) (*domain.Building, error) {
	var building domain.Building
	if err := row.Scan(
		&building.ID,
		&building.CommunityID,
		&building.Name,
		&building.State,
		&building.Address,
		&building.PhoneNumber,
		&building.ContactPerson,
		&building.SafetyStatus,
		&building.CreatedAt,
		&building.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepository) Create(ctx context.Context, building *domain.Building) error {
	const query = `
        INSERT INTO buildings (community_id, name, state, address, phone_number, contact_person, safety_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		building.CommunityID,
		building.Name,
		building.State,
		building.Address,
		building.PhoneNumber,
		building.ContactPerson,
		building.SafetyStatus,
	).Scan(&building.ID, &building.CreatedAt, &building.UpdatedAt)
}

func (r *buildingRepository) Update(ctx context.Context, building *domain.Building) error {
	const query = `
        UPDATE buildings
        SET name=$1, state=$2, address=$3, phone_number=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		building.Name,
		building.State,
		building.Address,
		building.PhoneNumber,
		building.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *buildingRepository) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	const query = `SELECT ` + buildingColumns + ` FROM buildings WHERE id=$1`
	return scanBuilding(r.pool.QueryRow(ctx, query, id))
}

func (r *buildingRepository) SetSafetyStatus(ctx context.Context, id string, status bool) error {
	const query = `UPDATE buildings SET safety_status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *buildingRepository) List(ctx context.Context, filter BuildingFilter) ([]domain.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings`
	args := []any{}
	clauses := []string{}

	if filter.CommunityID != nil {
		args = append(args, *filter.CommunityID)
		clauses = append(clauses, fmt.Sprintf("community_id=$%d", len(args)))
	}
	if filter.ContactPerson != nil {
		args = append(args, *filter.ContactPerson)
		clauses = append(clauses, fmt.Sprintf("contact_person=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY name, address"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Building
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *building)
	}
	return result, rows.Err()
}
