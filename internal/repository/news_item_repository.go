package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/pkg/database"
)

// newsItemRepository implements NewsItemRepository interface
type newsItemRepository struct {
	db *database.Postgres
}

// NewNewsItemRepository creates a new news item repository
func NewNewsItemRepository(db *database.Postgres) NewsItemRepository {
	return &newsItemRepository{db: db}
}

const newsItemColumns = `id, title, preview, image_url, source_url, source_name, category, political_bias, published_date, source_count, source, cluster_id, created_at, updated_at`

// Create creates a news item and fills in the generated id
func (r *newsItemRepository) Create(ctx context.Context, item *domain.NewsItem) error {
	query := `
		INSERT INTO news_items (title, preview, image_url, source_url, source_name, category, political_bias, published_date, source_count, source, cluster_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		item.Title,
		item.Preview,
		item.ImageURL,
		item.SourceURL,
		item.SourceName,
		item.Category,
		item.PoliticalBias,
		item.Date,
		item.SourceCount,
		item.Source,
		item.ClusterID,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create news item: %w", err)
	}

	return nil
}

// GetByID retrieves a news item by ID
func (r *newsItemRepository) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM news_items WHERE id = $1`, newsItemColumns)

	item, err := scanNewsItem(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("news item with id %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}

	return item, nil
}

// Update updates an existing news item
func (r *newsItemRepository) Update(ctx context.Context, item *domain.NewsItem) error {
	query := `
		UPDATE news_items
		SET title = $2, preview = $3, image_url = $4, source_url = $5, source_name = $6,
		    category = $7, political_bias = $8, published_date = $9, source_count = $10,
		    source = $11, cluster_id = $12, updated_at = $13
		WHERE id = $1
	`

	item.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Preview,
		item.ImageURL,
		item.SourceURL,
		item.SourceName,
		item.Category,
		item.PoliticalBias,
		item.Date,
		item.SourceCount,
		item.Source,
		item.ClusterID,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("news item with id %d not found: %w", item.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a news item by ID
func (r *newsItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM news_items WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("news item with id %d not found: %w", id, ErrNotFound)
	}

	return nil
}

// List retrieves news items matching the filter, newest first
func (r *newsItemRepository) List(ctx context.Context, filter NewsItemFilter, limit, offset int) ([]*domain.NewsItem, error) {
	where, args := newsItemWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s FROM news_items
		%s
		ORDER BY published_date DESC NULLS LAST, id DESC
		LIMIT $%d OFFSET $%d
	`, newsItemColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list news items: %w", err)
	}
	defer rows.Close()

	return collectNewsItems(rows)
}

// Count counts news items matching the filter
func (r *newsItemRepository) Count(ctx context.Context, filter NewsItemFilter) (int64, error) {
	where, args := newsItemWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM news_items %s`, where)

	var count int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count news items: %w", err)
	}

	return count, nil
}

// ListByCluster retrieves all items belonging to a cluster
func (r *newsItemRepository) ListByCluster(ctx context.Context, clusterID int64) ([]*domain.NewsItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news_items
		WHERE cluster_id = $1
		ORDER BY published_date DESC NULLS LAST, id DESC
	`, newsItemColumns)

	rows, err := r.db.DB.QueryContext(ctx, query, clusterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list news items by cluster: %w", err)
	}
	defer rows.Close()

	return collectNewsItems(rows)
}

func newsItemWhere(filter NewsItemFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func collectNewsItems(rows *sql.Rows) ([]*domain.NewsItem, error) {
	var items []*domain.NewsItem
	for rows.Next() {
		item, err := scanNewsItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news items: %w", err)
	}

	return items, nil
}

func scanNewsItem(row rowScanner) (*domain.NewsItem, error) {
	item := &domain.NewsItem{}
	var imageURL, sourceURL, sourceName, category, source sql.NullString
	var date sql.NullTime
	var sourceCount sql.NullInt64
	var clusterID sql.NullInt64

	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Preview,
		&imageURL,
		&sourceURL,
		&sourceName,
		&category,
		&item.PoliticalBias,
		&date,
		&sourceCount,
		&source,
		&clusterID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		item.ImageURL = &imageURL.String
	}
	if sourceURL.Valid {
		item.SourceURL = &sourceURL.String
	}
	if sourceName.Valid {
		item.SourceName = &sourceName.String
	}
	if category.Valid {
		item.Category = &category.String
	}
	if source.Valid {
		item.Source = &source.String
	}
	if date.Valid {
		item.Date = &date.Time
	}
	if sourceCount.Valid {
		count := int(sourceCount.Int64)
		item.SourceCount = &count
	}
	if clusterID.Valid {
		item.ClusterID = &clusterID.Int64
	}

	return item, nil
}
