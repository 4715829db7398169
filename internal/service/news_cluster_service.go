package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
)

// newsClusterService implements NewsClusterService
type newsClusterService struct {
	clusterRepo repository.NewsClusterRepository
	itemRepo    repository.NewsItemRepository
	logger      *zap.Logger
}

// NewNewsClusterService creates a new news cluster service
func NewNewsClusterService(clusterRepo repository.NewsClusterRepository, itemRepo repository.NewsItemRepository, logger *zap.Logger) NewsClusterService {
	return &newsClusterService{
		clusterRepo: clusterRepo,
		itemRepo:    itemRepo,
		logger:      logger,
	}
}

// Create stores a new cluster. A fresh cluster has no members, so its bias
// distribution starts at zero.
func (s *newsClusterService) Create(ctx context.Context, req *dto.NewsClusterRequest) (*domain.NewsCluster, error) {
	cluster := &domain.NewsCluster{
		Topic:                  req.Topic,
		TopicDescription:       req.TopicDescription,
		RepresentativeImageURL: req.RepresentativeImageURL,
		Keywords:               req.Keywords,
	}

	if err := s.clusterRepo.Create(ctx, cluster); err != nil {
		return nil, err
	}

	return cluster, nil
}

// GetByID retrieves a cluster, optionally with its member items
func (s *newsClusterService) GetByID(ctx context.Context, id int64, includeItems bool) (*dto.NewsClusterResponse, error) {
	cluster, err := s.clusterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var items []*domain.NewsItem
	if includeItems {
		items, err = s.itemRepo.ListByCluster(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	response := dto.NewsClusterResponseFromCluster(cluster, items)
	return &response, nil
}

// Update replaces a cluster's descriptive fields. Bias stats are untouched;
// they only change when membership changes.
func (s *newsClusterService) Update(ctx context.Context, id int64, req *dto.NewsClusterRequest) (*domain.NewsCluster, error) {
	cluster, err := s.clusterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cluster.Topic = req.Topic
	cluster.TopicDescription = req.TopicDescription
	cluster.RepresentativeImageURL = req.RepresentativeImageURL
	cluster.Keywords = req.Keywords

	if err := s.clusterRepo.Update(ctx, cluster); err != nil {
		return nil, err
	}

	return cluster, nil
}

// Delete removes a cluster. Member items survive; their cluster reference
// is cleared by the schema's ON DELETE SET NULL.
func (s *newsClusterService) Delete(ctx context.Context, id int64) error {
	return s.clusterRepo.Delete(ctx, id)
}

// List returns a page of clusters matching the filter, most recently
// updated first. Member items are loaded per cluster when includeItems
// is set.
func (s *newsClusterService) List(ctx context.Context, filter repository.NewsClusterFilter, page, size int, includeItems bool) (*dto.Page[dto.NewsClusterResponse], error) {
	clusters, err := s.clusterRepo.List(ctx, filter, size, page*size)
	if err != nil {
		return nil, err
	}

	total, err := s.clusterRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	content := make([]dto.NewsClusterResponse, 0, len(clusters))
	for _, cluster := range clusters {
		var items []*domain.NewsItem
		if includeItems {
			items, err = s.itemRepo.ListByCluster(ctx, cluster.ID)
			if err != nil {
				return nil, err
			}
		}
		content = append(content, dto.NewsClusterResponseFromCluster(cluster, items))
	}

	result := dto.NewPage(content, page, size, total)
	return &result, nil
}

// RecomputeStats re-derives a cluster's bias distribution from its current
// members and persists it
func (s *newsClusterService) RecomputeStats(ctx context.Context, clusterID int64) error {
	items, err := s.itemRepo.ListByCluster(ctx, clusterID)
	if err != nil {
		return err
	}

	dist := domain.RecomputeBiasDistribution(items)

	if err := s.clusterRepo.UpdateBiasStats(ctx, clusterID, dist); err != nil {
		return err
	}

	s.logger.Debug("cluster bias stats recomputed",
		zap.Int64("cluster_id", clusterID),
		zap.Int("article_count", dist.ArticleCount),
	)

	return nil
}
