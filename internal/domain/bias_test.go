package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func itemsWithBias(biases ...PoliticalBias) []*NewsItem {
	items := make([]*NewsItem, 0, len(biases))
	for _, bias := range biases {
		items = append(items, &NewsItem{PoliticalBias: bias})
	}
	return items
}

func TestRecomputeBiasDistribution_Empty(t *testing.T) {
	dist := RecomputeBiasDistribution(nil)

	assert.Equal(t, 0, dist.ArticleCount)
	assert.Zero(t, dist.LeftPercent)
	assert.Zero(t, dist.CenterLeftPercent)
	assert.Zero(t, dist.CenterPercent)
	assert.Zero(t, dist.CenterRightPercent)
	assert.Zero(t, dist.RightPercent)
}

func TestRecomputeBiasDistribution_Mixed(t *testing.T) {
	dist := RecomputeBiasDistribution(itemsWithBias(BiasLeft, BiasLeft, BiasCenter, BiasRight))

	assert.Equal(t, 4, dist.ArticleCount)
	assert.InDelta(t, 50.0, dist.LeftPercent, 0.001)
	assert.InDelta(t, 25.0, dist.CenterPercent, 0.001)
	assert.InDelta(t, 25.0, dist.RightPercent, 0.001)
	assert.InDelta(t, 0.0, dist.CenterLeftPercent, 0.001)
	assert.InDelta(t, 0.0, dist.CenterRightPercent, 0.001)
}

func TestRecomputeBiasDistribution_SumsToHundred(t *testing.T) {
	dist := RecomputeBiasDistribution(itemsWithBias(BiasLeft, BiasCenterLeft, BiasCenter))

	sum := dist.LeftPercent + dist.CenterLeftPercent + dist.CenterPercent +
		dist.CenterRightPercent + dist.RightPercent
	assert.InDelta(t, 100.0, sum, 0.001)
}
