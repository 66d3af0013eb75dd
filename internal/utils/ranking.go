package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity       float64 // 时间重力 (1.5)
	WeightLike    float64 // 1.0
	WeightComment float64 // 2.0
	WeightView    float64 // 浏览量数量级太大, 权重给得极小
	ScaleFactor   float64 // 放大系数 (100)
}

var DefaultRankConfig = RankConfig{
	Gravity:       1.5,
	WeightLike:    1.0,
	WeightComment: 2.0,
	WeightView:    0.01,
	ScaleFactor:   100.0,
}

// HotScore rates a topic by log-smoothed engagement decayed by its age in
// hours. A topic nobody touched scores 0.
func HotScore(createdAt, now time.Time, likes, comments, views int) float64 {
	hours := now.Sub(createdAt).Hours()
	if hours < 0 {
		hours = 0
	}

	weighted := float64(likes)*DefaultRankConfig.WeightLike +
		float64(comments)*DefaultRankConfig.WeightComment +
		float64(views)*DefaultRankConfig.WeightView

	// log10(sum + 1) keeps sum=0 at 0
	numerator := math.Log10(weighted+1) * DefaultRankConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultRankConfig.Gravity)

	return numerator / decay
}
