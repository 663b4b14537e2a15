package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amity-app/amity-service/internal/domain"
)

// TokenRepository manages single-use credential token persistence.
type TokenRepository interface {
	GetOrCreate(ctx context.Context, identityID string, kind domain.TokenKind) (*domain.CredentialToken, error)
	GetByValue(ctx context.Context, value string) (*domain.CredentialToken, error)
	DeleteAllForIdentity(ctx context.Context, identityID string) error
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository constructs repository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

// GetOrCreate returns the existing token for (identity, kind) or inserts a
// fresh opaque value. A second verification before redemption therefore
// returns the same token.
func (r *tokenRepository) GetOrCreate(ctx context.Context, identityID string, kind domain.TokenKind) (*domain.CredentialToken, error) {
	const query = `
        INSERT INTO credential_tokens (identity_id, kind, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (identity_id, kind) DO UPDATE SET kind=EXCLUDED.kind
        RETURNING id, identity_id, kind, value, created_at`

	var token domain.CredentialToken
	if err := r.pool.QueryRow(ctx, query, identityID, kind, uuid.NewString()).Scan(
		&token.ID,
		&token.IdentityID,
		&token.Kind,
		&token.Value,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) GetByValue(ctx context.Context, value string) (*domain.CredentialToken, error) {
	const query = `
        SELECT id, identity_id, kind, value, created_at
        FROM credential_tokens WHERE value=$1`

	var token domain.CredentialToken
	if err := r.pool.QueryRow(ctx, query, value).Scan(
		&token.ID,
		&token.IdentityID,
		&token.Kind,
		&token.Value,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteAllForIdentity removes every token bound to the identity. Redeeming
// one token consumes the rest as well.
func (r *tokenRepository) DeleteAllForIdentity(ctx context.Context, identityID string) error {
	const query = `DELETE FROM credential_tokens WHERE identity_id=$1`
	_, err := r.pool.Exec(ctx, query, identityID)
	return err
}
