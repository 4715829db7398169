package domain

// BiasDistribution is the percentage split of political bias across a set
// of news items. Percentages sum to 100 for a non-empty set and are all
// zero for an empty one.
type BiasDistribution struct {
	LeftPercent        float64
	CenterLeftPercent  float64
	CenterPercent      float64
	CenterRightPercent float64
	RightPercent       float64
	ArticleCount       int
}

// RecomputeBiasDistribution derives the bias percentages for a cluster from
// its current items. It is a pure function: callers invoke it explicitly
// after mutating a cluster's membership and persist the result themselves.
func RecomputeBiasDistribution(items []*NewsItem) BiasDistribution {
	dist := BiasDistribution{ArticleCount: len(items)}
	if len(items) == 0 {
		return dist
	}

	var left, centerLeft, center, centerRight, right int
	for _, item := range items {
		switch item.PoliticalBias {
		case BiasLeft:
			left++
		case BiasCenterLeft:
			centerLeft++
		case BiasCenter:
			center++
		case BiasCenterRight:
			centerRight++
		case BiasRight:
			right++
		}
	}

	total := float64(len(items))
	dist.LeftPercent = float64(left) / total * 100
	dist.CenterLeftPercent = float64(centerLeft) / total * 100
	dist.CenterPercent = float64(center) / total * 100
	dist.CenterRightPercent = float64(centerRight) / total * 100
	dist.RightPercent = float64(right) / total * 100

	return dist
}
