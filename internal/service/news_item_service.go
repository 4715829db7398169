package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
)

// ClusterStatsRecomputer recomputes a cluster's bias distribution after its
// membership changed. Implemented by the cluster service.
type ClusterStatsRecomputer interface {
	RecomputeStats(ctx context.Context, clusterID int64) error
}

// newsItemService implements NewsItemService
type newsItemService struct {
	itemRepo     repository.NewsItemRepository
	clusterStats ClusterStatsRecomputer
	logger       *zap.Logger
}

// NewNewsItemService creates a new news item service
func NewNewsItemService(itemRepo repository.NewsItemRepository, clusterStats ClusterStatsRecomputer, logger *zap.Logger) NewsItemService {
	return &newsItemService{
		itemRepo:     itemRepo,
		clusterStats: clusterStats,
		logger:       logger,
	}
}

// Create stores a new item and refreshes the bias stats of the cluster it
// joins, if any
func (s *newsItemService) Create(ctx context.Context, req *dto.NewsItemRequest) (*domain.NewsItem, error) {
	item, err := itemFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.recompute(ctx, item.ClusterID)

	return item, nil
}

// GetByID retrieves a news item
func (s *newsItemService) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// Update replaces an item's fields. If the item moved between clusters, the
// bias stats of both the old and the new cluster are refreshed.
func (s *newsItemService) Update(ctx context.Context, id int64, req *dto.NewsItemRequest) (*domain.NewsItem, error) {
	existing, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousCluster := existing.ClusterID

	item, err := itemFromRequest(req)
	if err != nil {
		return nil, err
	}
	item.ID = id
	item.CreatedAt = existing.CreatedAt

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.recompute(ctx, item.ClusterID)
	if previousCluster != nil && (item.ClusterID == nil || *previousCluster != *item.ClusterID) {
		s.recompute(ctx, previousCluster)
	}

	return item, nil
}

// Delete removes an item and refreshes the stats of the cluster it left
func (s *newsItemService) Delete(ctx context.Context, id int64) error {
	existing, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recompute(ctx, existing.ClusterID)

	return nil
}

// List returns a page of items matching the filter, newest first
func (s *newsItemService) List(ctx context.Context, filter repository.NewsItemFilter, page, size int) (*dto.Page[dto.NewsItemResponse], error) {
	items, err := s.itemRepo.List(ctx, filter, size, page*size)
	if err != nil {
		return nil, err
	}

	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	content := make([]dto.NewsItemResponse, 0, len(items))
	for _, item := range items {
		content = append(content, dto.NewsItemResponseFromItem(item))
	}

	result := dto.NewPage(content, page, size, total)
	return &result, nil
}

// recompute refreshes cluster stats on a best-effort basis: a stale bias
// distribution must not fail the item mutation that already committed.
func (s *newsItemService) recompute(ctx context.Context, clusterID *int64) {
	if clusterID == nil {
		return
	}
	if err := s.clusterStats.RecomputeStats(ctx, *clusterID); err != nil {
		s.logger.Warn("failed to recompute cluster bias stats",
			zap.Int64("cluster_id", *clusterID),
			zap.Error(err),
		)
	}
}

func itemFromRequest(req *dto.NewsItemRequest) (*domain.NewsItem, error) {
	bias := domain.PoliticalBias(req.PoliticalBias)
	if !domain.ValidBias(bias) {
		return nil, &BadRequestError{Message: fmt.Sprintf("unknown political bias %q", req.PoliticalBias)}
	}

	item := &domain.NewsItem{
		Title:         req.Title,
		Preview:       req.Preview,
		ImageURL:      req.ImageURL,
		SourceURL:     req.SourceURL,
		SourceName:    req.SourceName,
		Category:      req.Category,
		PoliticalBias: bias,
		SourceCount:   req.SourceCount,
		Source:        req.Source,
		ClusterID:     req.ClusterID,
	}

	if req.Date != nil {
		item.Date = dto.ParseDate(*req.Date)
		if item.Date == nil {
			return nil, &BadRequestError{Message: fmt.Sprintf("invalid date %q", *req.Date)}
		}
	}

	return item, nil
}
