package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/oauth"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/utils"
)

const defaultOAuthUserName = "이름 없음"

// userService implements UserService
type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, bcryptCost int, logger *zap.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// SignUp registers a local account. The email must not be in use by any
// account, local or OAuth.
func (s *userService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error) {
	email := utils.SanitizeEmail(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		return nil, &BadRequestError{Message: "해당 이메일은 이미 사용 중입니다."}
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:          req.Name,
		Email:         email,
		Password:      &passwordHash,
		Provider:      domain.ProviderLocal,
		EmailVerified: false,
		Role:          domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &BadRequestError{Message: "해당 이메일은 이미 사용 중입니다."}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return &dto.SignUpResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
}

// ProcessOAuthUser turns a provider's raw profile attributes into a local
// account. An existing account created through a different provider is left
// untouched; the login fails instead of silently merging identities.
func (s *userService) ProcessOAuthUser(ctx context.Context, provider string, attributes map[string]any) (*domain.User, error) {
	info, err := oauth.Resolve(provider, attributes)
	if err != nil {
		return nil, &OAuthProcessingError{Message: err.Error()}
	}

	if info.Email == "" {
		return nil, &OAuthProcessingError{Message: "OAuth2 공급자로부터 이메일을 찾을 수 없습니다"}
	}

	loginProvider := domain.AuthProvider(strings.ToUpper(provider))

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.registerOAuthUser(ctx, loginProvider, info)
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if user.Provider != loginProvider {
		return nil, &OAuthProcessingError{
			Message: fmt.Sprintf("이미 %s 계정으로 가입되어 있습니다. %s 계정으로 로그인해 주세요.", user.Provider, user.Provider),
		}
	}

	return s.updateOAuthUser(ctx, user, info)
}

func (s *userService) registerOAuthUser(ctx context.Context, provider domain.AuthProvider, info oauth.UserInfo) (*domain.User, error) {
	name := info.Name
	if name == "" {
		name = defaultOAuthUserName
	}

	user := &domain.User{
		Name:          name,
		Email:         info.Email,
		EmailVerified: true,
		Provider:      provider,
		Role:          domain.RoleUser,
	}
	if info.ImageURL != "" {
		user.ImageURL = &info.ImageURL
	}
	if info.ID != "" {
		user.ProviderID = &info.ID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register oauth user: %w", err)
	}

	s.logger.Info("oauth user registered",
		zap.Int64("user_id", user.ID),
		zap.String("provider", string(provider)),
	)

	return user, nil
}

func (s *userService) updateOAuthUser(ctx context.Context, user *domain.User, info oauth.UserInfo) (*domain.User, error) {
	if info.Name != "" {
		user.Name = info.Name
	}
	if info.ImageURL != "" {
		user.ImageURL = &info.ImageURL
	} else {
		user.ImageURL = nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update oauth user: %w", err)
	}

	return user, nil
}
