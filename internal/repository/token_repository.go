package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/pkg/database"
)

// tokenRepository implements TokenRepository interface
type tokenRepository struct {
	db *database.Postgres
}

// NewTokenRepository creates a new refresh token repository
func NewTokenRepository(db *database.Postgres) TokenRepository {
	return &tokenRepository{db: db}
}

// Create persists a refresh token and fills in the generated id
func (r *tokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expiry_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		token.UserID,
		token.Token,
		token.ExpiryDate,
		token.CreatedAt,
	).Scan(&token.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("refresh token already persisted: %w", ErrDuplicateToken)
			}
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

// GetByUserIDAndToken retrieves the persisted credential matching both the
// owning user and the exact token string
func (r *tokenRepository) GetByUserIDAndToken(ctx context.Context, userID int64, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expiry_date, created_at
		FROM refresh_tokens
		WHERE user_id = $1 AND token = $2
	`

	record := &domain.RefreshToken{}
	err := r.db.DB.QueryRowContext(ctx, query, userID, token).Scan(
		&record.ID,
		&record.UserID,
		&record.Token,
		&record.ExpiryDate,
		&record.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return record, nil
}

// Delete removes a refresh token by id
func (r *tokenRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM refresh_tokens WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("refresh token with id %d not found: %w", id, ErrNotFound)
	}

	return nil
}

// DeleteExpired deletes all refresh tokens past their expiry
func (r *tokenRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM refresh_tokens WHERE expiry_date < $1`

	if _, err := r.db.DB.ExecContext(ctx, query, time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	return nil
}
