package repository

import (
	"context"

	"github.com/prismedia/news-server/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
}

// TokenRepository defines methods for persisted refresh tokens
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByUserIDAndToken(ctx context.Context, userID int64, token string) (*domain.RefreshToken, error)
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) error
}

// NewsItemFilter narrows news item listings
type NewsItemFilter struct {
	Keyword  string
	Category string
}

// NewsItemRepository defines methods for news item operations
type NewsItemRepository interface {
	Create(ctx context.Context, item *domain.NewsItem) error
	GetByID(ctx context.Context, id int64) (*domain.NewsItem, error)
	Update(ctx context.Context, item *domain.NewsItem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter NewsItemFilter, limit, offset int) ([]*domain.NewsItem, error)
	Count(ctx context.Context, filter NewsItemFilter) (int64, error)
	ListByCluster(ctx context.Context, clusterID int64) ([]*domain.NewsItem, error)
}

// NewsClusterFilter narrows cluster listings
type NewsClusterFilter struct {
	Topic    string
	Keywords string
}

// NewsClusterRepository defines methods for news cluster operations
type NewsClusterRepository interface {
	Create(ctx context.Context, cluster *domain.NewsCluster) error
	GetByID(ctx context.Context, id int64) (*domain.NewsCluster, error)
	Update(ctx context.Context, cluster *domain.NewsCluster) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter NewsClusterFilter, limit, offset int) ([]*domain.NewsCluster, error)
	Count(ctx context.Context, filter NewsClusterFilter) (int64, error)
	UpdateBiasStats(ctx context.Context, id int64, dist domain.BiasDistribution) error
}
