package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/utils"
)

// tokenService implements TokenService
type tokenService struct {
	tokenRepo  repository.TokenRepository
	jwtManager *utils.JWTManager
	logger     *zap.Logger
}

// NewTokenService creates a new token service
func NewTokenService(tokenRepo repository.TokenRepository, jwtManager *utils.JWTManager, logger *zap.Logger) TokenService {
	return &tokenService{
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// CreateTokenPair mints an access/refresh pair for the user and persists the
// refresh credential so it can be checked and revoked later
func (s *tokenService) CreateTokenPair(ctx context.Context, userID int64) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.CreateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, expiry, err := s.jwtManager.CreateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	record := &domain.RefreshToken{
		UserID:     userID,
		Token:      refreshToken,
		ExpiryDate: expiry,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessTokenTTL:  s.jwtManager.AccessTokenTTL(),
		RefreshTokenTTL: s.jwtManager.RefreshTokenTTL(),
	}, nil
}

// RefreshAccessToken exchanges a valid persisted refresh token for a new
// access token. The refresh token itself is not rotated; it stays valid
// until its own expiry. An expired persisted credential is deleted on sight.
func (s *tokenService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if !s.jwtManager.ValidateToken(refreshToken) {
		return "", ErrRefreshTokenInvalid
	}

	userID, err := s.jwtManager.UserIDFromToken(refreshToken)
	if err != nil {
		s.logger.Debug("refresh token subject could not be parsed", zap.Error(err))
		return "", ErrRefreshTokenInvalid
	}

	record, err := s.tokenRepo.GetByUserIDAndToken(ctx, userID, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRefreshTokenInvalid
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if record.Expired() {
		if err := s.tokenRepo.Delete(ctx, record.ID); err != nil {
			s.logger.Warn("failed to delete expired refresh token",
				zap.Int64("token_id", record.ID),
				zap.Error(err),
			)
		}
		return "", ErrRefreshTokenInvalid
	}

	accessToken, err := s.jwtManager.CreateAccessToken(record.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}

	return accessToken, nil
}

// PurgeExpired removes persisted refresh tokens past their expiry
func (s *tokenService) PurgeExpired(ctx context.Context) error {
	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		return fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	return nil
}
