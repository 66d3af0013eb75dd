package services

import (
	"gameforum/internal/models"
)

// StatsDelta is a change to a user's activity counters.
type StatsDelta struct {
	Topics        int
	Comments      int
	LikesReceived int
}

var (
	StatsTopicCreated   = StatsDelta{Topics: 1}
	StatsTopicDeleted   = StatsDelta{Topics: -1}
	StatsCommentCreated = StatsDelta{Comments: 1}
	StatsCommentDeleted = StatsDelta{Comments: -1}
	StatsLikeReceived   = StatsDelta{LikesReceived: 1}
)

// apply adds the delta to u. Counters never drop below zero.
func (d StatsDelta) apply(u *models.User) {
	u.TopicsCount = floorZero(u.TopicsCount + d.Topics)
	u.CommentsCount = floorZero(u.CommentsCount + d.Comments)
	u.LikesReceived = floorZero(u.LikesReceived + d.LikesReceived)
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
