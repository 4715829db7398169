package dto

import (
	"time"

	"github.com/prismedia/news-server/internal/domain"
)

const dateLayout = "2006-01-02T15:04:05"

// NewsItemRequest is the payload for creating or updating a news item
type NewsItemRequest struct {
	Title         string  `json:"title" binding:"required"`
	Preview       string  `json:"preview" binding:"required"`
	ImageURL      *string `json:"imageUrl"`
	SourceURL     *string `json:"sourceUrl"`
	SourceName    *string `json:"sourceName"`
	Category      *string `json:"category"`
	PoliticalBias string  `json:"politicalBias" binding:"required"`
	Date          *string `json:"date"`
	SourceCount   *int    `json:"sourceCount"`
	Source        *string `json:"source"`
	ClusterID     *int64  `json:"clusterId"`
}

// NewsItemResponse is the API shape of a news item
type NewsItemResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Preview       string  `json:"preview"`
	ImageURL      *string `json:"imageUrl"`
	SourceURL     *string `json:"sourceUrl"`
	SourceName    *string `json:"sourceName"`
	Category      *string `json:"category"`
	PoliticalBias string  `json:"politicalBias"`
	Date          *string `json:"date"`
	SourceCount   *int    `json:"sourceCount"`
	Source        *string `json:"source"`
	ClusterID     *int64  `json:"clusterId"`
}

// NewsItemResponseFromItem maps a news item to its API shape
func NewsItemResponseFromItem(item *domain.NewsItem) NewsItemResponse {
	var date *string
	if item.Date != nil {
		formatted := item.Date.Format(dateLayout)
		date = &formatted
	}

	return NewsItemResponse{
		ID:            item.ID,
		Title:         item.Title,
		Preview:       item.Preview,
		ImageURL:      item.ImageURL,
		SourceURL:     item.SourceURL,
		SourceName:    item.SourceName,
		Category:      item.Category,
		PoliticalBias: string(item.PoliticalBias),
		Date:          date,
		SourceCount:   item.SourceCount,
		Source:        item.Source,
		ClusterID:     item.ClusterID,
	}
}

// ParseDate parses the wire date format used by news item payloads
func ParseDate(value string) *time.Time {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// NewsClusterRequest is the payload for creating or updating a cluster
type NewsClusterRequest struct {
	Topic                  string  `json:"topic" binding:"required"`
	TopicDescription       *string `json:"topicDescription"`
	RepresentativeImageURL *string `json:"representativeImageUrl"`
	Keywords               *string `json:"keywords"`
}

// NewsClusterResponse is the API shape of a news cluster
type NewsClusterResponse struct {
	ID                     int64              `json:"id"`
	Topic                  string             `json:"topic"`
	TopicDescription       *string            `json:"topicDescription"`
	RepresentativeImageURL *string            `json:"representativeImageUrl"`
	Keywords               *string            `json:"keywords"`
	LeftPercent            float64            `json:"leftPercent"`
	CenterLeftPercent      float64            `json:"centerLeftPercent"`
	CenterPercent          float64            `json:"centerPercent"`
	CenterRightPercent     float64            `json:"centerRightPercent"`
	RightPercent           float64            `json:"rightPercent"`
	ArticleCount           int                `json:"articleCount"`
	NewsItems              []NewsItemResponse `json:"newsItems"`
	CreatedAt              string             `json:"createdAt"`
	UpdatedAt              string             `json:"updatedAt"`
}

// NewsClusterResponseFromCluster maps a cluster and (optionally) its items
// to the API shape
func NewsClusterResponseFromCluster(cluster *domain.NewsCluster, items []*domain.NewsItem) NewsClusterResponse {
	itemResponses := make([]NewsItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, NewsItemResponseFromItem(item))
	}

	return NewsClusterResponse{
		ID:                     cluster.ID,
		Topic:                  cluster.Topic,
		TopicDescription:       cluster.TopicDescription,
		RepresentativeImageURL: cluster.RepresentativeImageURL,
		Keywords:               cluster.Keywords,
		LeftPercent:            cluster.LeftPercent,
		CenterLeftPercent:      cluster.CenterLeftPercent,
		CenterPercent:          cluster.CenterPercent,
		CenterRightPercent:     cluster.CenterRightPercent,
		RightPercent:           cluster.RightPercent,
		ArticleCount:           cluster.ArticleCount,
		NewsItems:              itemResponses,
		CreatedAt:              cluster.CreatedAt.Format(dateLayout),
		UpdatedAt:              cluster.UpdatedAt.Format(dateLayout),
	}
}
