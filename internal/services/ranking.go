package services

import (
	"cmp"
	"slices"

	"gameforum/internal/models"
	"gameforum/internal/utils"
)

// TrendingTopics returns at most limit topics ordered by hot score, newer
// first on ties. Scores depend on the current time, so the result is never
// cached.
func (s *ForumService) TrendingTopics(limit int) []models.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	type scored struct {
		topic models.Topic
		score float64
	}
	ranked := make([]scored, 0, len(s.topics))
	for _, t := range s.topics {
		ranked = append(ranked, scored{
			topic: t,
			score: utils.HotScore(t.CreatedAt, now, len(t.Likes), t.CommentsCount, t.Views),
		})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return b.topic.CreatedAt.Compare(a.topic.CreatedAt)
	})

	if limit >= 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	out := make([]models.Topic, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.topic.Clone())
	}
	return out
}
