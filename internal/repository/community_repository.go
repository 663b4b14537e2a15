package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amity-app/amity-service/internal/domain"
)

// CommunityRepository handles persistence for communities.
type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community) error
	Update(ctx context.Context, community *domain.Community) error
	GetByID(ctx context.Context, id string) (*domain.Community, error)
	SetSafetyStatus(ctx context.Context, id string, status bool) error
	List(ctx context.Context, filter CommunityFilter) ([]domain.Community, error)
	SearchTerms(ctx context.Context) ([]string, error)
}

// CommunityFilter defines query params for community listing.
type CommunityFilter struct {
	ContactPerson *string
	SafetyStatus  *bool
	Limit         int
	Offset        int
}

type communityRepository struct {
	pool *pgxpool.Pool
}

// NewCommunityRepository instantiates the repository.
func NewCommunityRepository(pool *pgxpool.Pool) CommunityRepository {
	return &communityRepository{pool: pool}
}

const communityColumns = `id, name, state, zip_code, address, phone_number, description, contact_person, safety_status, created_at, updated_at`

func scanCommunity(row pgx.Row) (*domain.Community, error) {
	var community domain.Community
	if err := row.Scan(
		&community.ID,
		&community.Name,
		&community.State,
		&community.ZipCode,
		&community.Address,
		&community.PhoneNumber,
		&community.Description,
		&community.ContactPerson,
		&community.SafetyStatus,
		&community.CreatedAt,
		&community.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) Create(ctx context.Context, community *domain.Community) error {
	const query = `
        INSERT INTO communities (name, state, zip_code, address, phone_number, description, contact_person, safety_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		community.Name,
		community.State,
		community.ZipCode,
		community.Address,
		community.PhoneNumber,
		community.Description,
		community.ContactPerson,
		community.SafetyStatus,
	).Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt)
}

func (r *communityRepository) Update(ctx context.Context, community *domain.Community) error {
	const query = `
        UPDATE communities
        SET name=$1, state=$2, zip_code=$3, address=$4, phone_number=$5, description=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		community.Name,
		community.State,
		community.ZipCode,
		community.Address,
		community.PhoneNumber,
		community.Description,
		community.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	const query = `SELECT ` + communityColumns + ` FROM communities WHERE id=$1`
	return scanCommunity(r.pool.QueryRow(ctx, query, id))
}

func (r *communityRepository) SetSafetyStatus(ctx context.Context, id string, status bool) error {
	const query = `UPDATE communities SET safety_status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *communityRepository) List(ctx context.Context, filter CommunityFilter) ([]domain.Community, error) {
	query := `SELECT ` + communityColumns + ` FROM communities`
	args := []any{}
	clauses := []string{}

	if filter.ContactPerson != nil {
		args = append(args, *filter.ContactPerson)
		clauses = append(clauses, fmt.Sprintf("contact_person=$%d", len(args)))
	}
	if filter.SafetyStatus != nil {
		args = append(args, *filter.SafetyStatus)
		clauses = append(clauses, fmt.Sprintf("safety_status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY name, address, state"
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

	var result []domain.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *community)
	}
	return result, rows.Err()
}

// SearchTerms collects distinct community names, states and contact person
// names for search predictions.
func (r *communityRepository) SearchTerms(ctx context.Context) ([]string, error) {
	const query = `
        SELECT DISTINCT term FROM (
            SELECT name AS term FROM communities
            UNION
            SELECT state FROM communities
            UNION
            SELECT TRIM(i.first_name || ' ' || i.last_name)
            FROM communities c JOIN identities i ON i.id = c.contact_person
        ) AS terms
        WHERE term IS NOT NULL AND term <> ''
        ORDER BY term`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, err
		}
		result = append(result, term)
	}
	return result, rows.Err()
}
