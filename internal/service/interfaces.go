package service

import (
	"context"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
)

// TokenService mints session token pairs and exchanges persisted refresh
// credentials for new access tokens
type TokenService interface {
	CreateTokenPair(ctx context.Context, userID int64) (*domain.TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	PurgeExpired(ctx context.Context) error
}

// UserService handles local signup and OAuth2 account provisioning
type UserService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ProcessOAuthUser(ctx context.Context, provider string, attributes map[string]any) (*domain.User, error)
}

// NewsItemService handles news item CRUD and keeps cluster bias stats in
// step with item membership changes
type NewsItemService interface {
	Create(ctx context.Context, req *dto.NewsItemRequest) (*domain.NewsItem, error)
	GetByID(ctx context.Context, id int64) (*domain.NewsItem, error)
	Update(ctx context.Context, id int64, req *dto.NewsItemRequest) (*domain.NewsItem, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.NewsItemFilter, page, size int) (*dto.Page[dto.NewsItemResponse], error)
}

// NewsClusterService handles topic cluster CRUD and bias stat recomputation
type NewsClusterService interface {
	Create(ctx context.Context, req *dto.NewsClusterRequest) (*domain.NewsCluster, error)
	GetByID(ctx context.Context, id int64, includeItems bool) (*dto.NewsClusterResponse, error)
	Update(ctx context.Context, id int64, req *dto.NewsClusterRequest) (*domain.NewsCluster, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.NewsClusterFilter, page, size int, includeItems bool) (*dto.Page[dto.NewsClusterResponse], error)
	RecomputeStats(ctx context.Context, clusterID int64) error
}
