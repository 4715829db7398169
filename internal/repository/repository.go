package repository

import (
	"github.com/prismedia/news-server/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User        UserRepository
	Token       TokenRepository
	NewsItem    NewsItemRepository
	NewsCluster NewsClusterRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Token:       NewTokenRepository(db),
		NewsItem:    NewNewsItemRepository(db),
		NewsCluster: NewNewsClusterRepository(db),
	}
}
