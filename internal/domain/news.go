package domain

import "time"

// PoliticalBias classifies the editorial leaning of a news item
type PoliticalBias string

const (
	BiasLeft        PoliticalBias = "LEFT"
	BiasCenterLeft  PoliticalBias = "CENTER_LEFT"
	BiasCenter      PoliticalBias = "CENTER"
	BiasCenterRight PoliticalBias = "CENTER_RIGHT"
	BiasRight       PoliticalBias = "RIGHT"
)

// ValidBias reports whether b is one of the known bias values
func ValidBias(b PoliticalBias) bool {
	switch b {
	case BiasLeft, BiasCenterLeft, BiasCenter, BiasCenterRight, BiasRight:
		return true
	}
	return false
}

// NewsItem is a single aggregated article
type NewsItem struct {
	ID            int64         `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Preview       string        `json:"preview" db:"preview"`
	ImageURL      *string       `json:"imageUrl" db:"image_url"`
	SourceURL     *string       `json:"sourceUrl" db:"source_url"`
	SourceName    *string       `json:"sourceName" db:"source_name"`
	Category      *string       `json:"category" db:"category"`
	PoliticalBias PoliticalBias `json:"politicalBias" db:"political_bias"`
	Date          *time.Time    `json:"date" db:"published_date"`
	SourceCount   *int          `json:"sourceCount" db:"source_count"`
	Source        *string       `json:"source" db:"source"`
	ClusterID     *int64        `json:"clusterId" db:"cluster_id"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// NewsCluster groups related news items around one topic and carries the
// aggregated political bias distribution of its members.
type NewsCluster struct {
	ID                     int64     `json:"id" db:"id"`
	Topic                  string    `json:"topic" db:"topic"`
	TopicDescription       *string   `json:"topicDescription" db:"topic_description"`
	RepresentativeImageURL *string   `json:"representativeImageUrl" db:"representative_image_url"`
	Keywords               *string   `json:"keywords" db:"keywords"`
	LeftPercent            float64   `json:"leftPercent" db:"left_percent"`
	CenterLeftPercent      float64   `json:"centerLeftPercent" db:"center_left_percent"`
	CenterPercent          float64   `json:"centerPercent" db:"center_percent"`
	CenterRightPercent     float64   `json:"centerRightPercent" db:"center_right_percent"`
	RightPercent           float64   `json:"rightPercent" db:"right_percent"`
	ArticleCount           int       `json:"articleCount" db:"article_count"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}
