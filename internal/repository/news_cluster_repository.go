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

// newsClusterRepository implements NewsClusterRepository interface
type newsClusterRepository struct {
	db *database.Postgres
}

// NewNewsClusterRepository creates a new news cluster repository
func NewNewsClusterRepository(db *database.Postgres) NewsClusterRepository {
	return &newsClusterRepository{db: db}
}

const newsClusterColumns = `id, topic, topic_description, representative_image_url, keywords, left_percent, center_left_percent, center_percent, center_right_percent, right_percent, article_count, created_at, updated_at`

// Create creates a cluster and fills in the generated id
func (r *newsClusterRepository) Create(ctx context.Context, cluster *domain.NewsCluster) error {
	query := `
		INSERT INTO news_clusters (topic, topic_description, representative_image_url, keywords, left_percent, center_left_percent, center_percent, center_right_percent, right_percent, article_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	if cluster.CreatedAt.IsZero() {
		cluster.CreatedAt = now
	}
	if cluster.UpdatedAt.IsZero() {
		cluster.UpdatedAt = now
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		cluster.Topic,
		cluster.TopicDescription,
		cluster.RepresentativeImageURL,
		cluster.Keywords,
		cluster.LeftPercent,
		cluster.CenterLeftPercent,
		cluster.CenterPercent,
		cluster.CenterRightPercent,
		cluster.RightPercent,
		cluster.ArticleCount,
		cluster.CreatedAt,
		cluster.UpdatedAt,
	).Scan(&cluster.ID)

	if err != nil {
		return fmt.Errorf("failed to create news cluster: %w", err)
	}

	return nil
}

// GetByID retrieves a cluster by ID
func (r *newsClusterRepository) GetByID(ctx context.Context, id int64) (*domain.NewsCluster, error) {
	query := fmt.Sprintf(`SELECT %s FROM news_clusters WHERE id = $1`, newsClusterColumns)

	cluster, err := scanNewsCluster(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("news cluster with id %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get news cluster: %w", err)
	}

	return cluster, nil
}

// Update updates the descriptive fields of a cluster
func (r *newsClusterRepository) Update(ctx context.Context, cluster *domain.NewsCluster) error {
	query := `
		UPDATE news_clusters
		SET topic = $2, topic_description = $3, representative_image_url = $4, keywords = $5, updated_at = $6
		WHERE id = $1
	`

	cluster.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		cluster.ID,
		cluster.Topic,
		cluster.TopicDescription,
		cluster.RepresentativeImageURL,
		cluster.Keywords,
		cluster.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news cluster: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("news cluster with id %d not found: %w", cluster.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a cluster by ID
func (r *newsClusterRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM news_clusters WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete news cluster: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("news cluster with id %d not found: %w", id, ErrNotFound)
	}

	return nil
}

// List retrieves clusters matching the filter, most recently updated first
func (r *newsClusterRepository) List(ctx context.Context, filter NewsClusterFilter, limit, offset int) ([]*domain.NewsCluster, error) {
	where, args := newsClusterWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s FROM news_clusters
		%s
		ORDER BY updated_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, newsClusterColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list news clusters: %w", err)
	}
	defer rows.Close()

	var clusters []*domain.NewsCluster
	for rows.Next() {
		cluster, err := scanNewsCluster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news cluster: %w", err)
		}
		clusters = append(clusters, cluster)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news clusters: %w", err)
	}

	return clusters, nil
}

// Count counts clusters matching the filter
func (r *newsClusterRepository) Count(ctx context.Context, filter NewsClusterFilter) (int64, error) {
	where, args := newsClusterWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM news_clusters %s`, where)

	var count int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count news clusters: %w", err)
	}

	return count, nil
}

// UpdateBiasStats persists a freshly recomputed bias distribution
func (r *newsClusterRepository) UpdateBiasStats(ctx context.Context, id int64, dist domain.BiasDistribution) error {
	query := `
		UPDATE news_clusters
		SET left_percent = $2, center_left_percent = $3, center_percent = $4,
		    center_right_percent = $5, right_percent = $6, article_count = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		id,
		dist.LeftPercent,
		dist.CenterLeftPercent,
		dist.CenterPercent,
		dist.CenterRightPercent,
		dist.RightPercent,
		dist.ArticleCount,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update cluster bias stats: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("news cluster with id %d not found: %w", id, ErrNotFound)
	}

	return nil
}

func newsClusterWhere(filter NewsClusterFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Topic != "" {
		args = append(args, "%"+filter.Topic+"%")
		conditions = append(conditions, fmt.Sprintf("topic ILIKE $%d", len(args)))
	}
	if filter.Keywords != "" {
		args = append(args, "%"+filter.Keywords+"%")
		conditions = append(conditions, fmt.Sprintf("keywords ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanNewsCluster(row rowScanner) (*domain.NewsCluster, error) {
	cluster := &domain.NewsCluster{}
	var topicDescription, representativeImageURL, keywords sql.NullString

	err := row.Scan(
		&cluster.ID,
		&cluster.Topic,
		&topicDescription,
		&representativeImageURL,
		&keywords,
		&cluster.LeftPercent,
		&cluster.CenterLeftPercent,
		&cluster.CenterPercent,
		&cluster.CenterRightPercent,
		&cluster.RightPercent,
		&cluster.ArticleCount,
		&cluster.CreatedAt,
		&cluster.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if topicDescription.Valid {
		cluster.TopicDescription = &topicDescription.String
	}
	if representativeImageURL.Valid {
		cluster.RepresentativeImageURL = &representativeImageURL.String
	}
	if keywords.Valid {
		cluster.Keywords = &keywords.String
	}

	return cluster, nil
}
