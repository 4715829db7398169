package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
)

type fakeItemRepo struct {
	items  map[int64]*domain.NewsItem
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[int64]*domain.NewsItem{}}
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.NewsItem) error {
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id int64) (*domain.NewsItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *domain.NewsItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, _ repository.NewsItemFilter, limit, offset int) ([]*domain.NewsItem, error) {
	all := make([]*domain.NewsItem, 0, len(r.items))
	for id := int64(1); id <= r.nextID; id++ {
		if item, ok := r.items[id]; ok {
			all = append(all, item)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeItemRepo) Count(_ context.Context, _ repository.NewsItemFilter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeItemRepo) ListByCluster(_ context.Context, clusterID int64) ([]*domain.NewsItem, error) {
	var matched []*domain.NewsItem
	for id := int64(1); id <= r.nextID; id++ {
		item, ok := r.items[id]
		if ok && item.ClusterID != nil && *item.ClusterID == clusterID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

type recordingRecomputer struct {
	calls []int64
}

func (r *recordingRecomputer) RecomputeStats(_ context.Context, clusterID int64) error {
	r.calls = append(r.calls, clusterID)
	return nil
}

func clusteredItemRequest(title, bias string, clusterID *int64) *dto.NewsItemRequest {
	return &dto.NewsItemRequest{
		Title:         title,
		Preview:       "preview of " + title,
		PoliticalBias: bias,
		ClusterID:     clusterID,
	}
}

func TestCreateItem_RecomputesClusterStats(t *testing.T) {
	recomputer := &recordingRecomputer{}
	svc := NewNewsItemService(newFakeItemRepo(), recomputer, zap.NewNop())

	clusterID := int64(3)
	item, err := svc.Create(context.Background(), clusteredItemRequest("Clustered", "LEFT", &clusterID))
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, []int64{3}, recomputer.calls)
}

func TestCreateItem_NoClusterNoRecompute(t *testing.T) {
	recomputer := &recordingRecomputer{}
	svc := NewNewsItemService(newFakeItemRepo(), recomputer, zap.NewNop())

	_, err := svc.Create(context.Background(), clusteredItemRequest("Standalone", "CENTER", nil))
	require.NoError(t, err)

	assert.Empty(t, recomputer.calls)
}

func TestCreateItem_InvalidBias(t *testing.T) {
	svc := NewNewsItemService(newFakeItemRepo(), &recordingRecomputer{}, zap.NewNop())

	_, err := svc.Create(context.Background(), clusteredItemRequest("Bad", "FAR_OUT", nil))
	var badRequest *BadRequestError
	assert.ErrorAs(t, err, &badRequest)
}

func TestCreateItem_InvalidDate(t *testing.T) {
	svc := NewNewsItemService(newFakeItemRepo(), &recordingRecomputer{}, zap.NewNop())

	req := clusteredItemRequest("Dated", "CENTER", nil)
	date := "31-12-2025"
	req.Date = &date

	_, err := svc.Create(context.Background(), req)
	var badRequest *BadRequestError
	assert.ErrorAs(t, err, &badRequest)
}

func TestUpdateItem_RecomputesBothClustersOnMove(t *testing.T) {
	repo := newFakeItemRepo()
	recomputer := &recordingRecomputer{}
	svc := NewNewsItemService(repo, recomputer, zap.NewNop())

	oldCluster := int64(1)
	item, err := svc.Create(context.Background(), clusteredItemRequest("Mover", "CENTER", &oldCluster))
	require.NoError(t, err)

	newCluster := int64(2)
	_, err = svc.Update(context.Background(), item.ID, clusteredItemRequest("Mover", "CENTER", &newCluster))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 1}, recomputer.calls)
}

func TestDeleteItem_RecomputesClusterStats(t *testing.T) {
	repo := newFakeItemRepo()
	recomputer := &recordingRecomputer{}
	svc := NewNewsItemService(repo, recomputer, zap.NewNop())

	clusterID := int64(5)
	item, err := svc.Create(context.Background(), clusteredItemRequest("Doomed", "RIGHT", &clusterID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), item.ID))

	assert.Equal(t, []int64{5, 5}, recomputer.calls)
	_, err = svc.GetByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListItems_Paging(t *testing.T) {
	svc := NewNewsItemService(newFakeItemRepo(), &recordingRecomputer{}, zap.NewNop())

	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(context.Background(), clusteredItemRequest(title, "CENTER", nil))
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), repository.NewsItemFilter{}, 1, 2)
	require.NoError(t, err)

	assert.Len(t, page.Content, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
}
