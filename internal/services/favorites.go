package services

import (
	"context"
	"slices"

	"gameforum/internal/models"
	"gameforum/internal/storage"
)

// favoriteIDs returns the user's favorite topic ids, loading them on first
// use. Callers hold s.mu.
func (s *ForumService) favoriteIDs(ctx context.Context, userID string) ([]string, error) {
	if ids, ok := s.favorites[userID]; ok {
		return ids, nil
	}
	ids, err := storage.NewCollection[string](s.kv, storage.FavoritesKey(userID), s.log).Load(ctx)
	if err != nil {
		return nil, s.persist(ctx, err, storage.FavoritesKey(userID))
	}
	s.favorites[userID] = ids
	return ids, nil
}

// ToggleFavorite flips the topic in the session user's favorites and reports
// whether it is now a favorite. Without a session nothing happens.
func (s *ForumService) ToggleFavorite(ctx context.Context, topicID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return false, nil
	}
	ids, err := s.favoriteIDs(ctx, user.ID)
	if err != nil {
		return false, err
	}

	ids, added := models.ToggleID(ids, topicID)
	s.favorites[user.ID] = ids
	key := storage.FavoritesKey(user.ID)
	if err := s.persist(ctx, storage.NewCollection[string](s.kv, key, s.log).SaveAll(ctx, ids), key); err != nil {
		return false, err
	}
	return added, nil
}

func (s *ForumService) IsFavorite(ctx context.Context, topicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return false
	}
	ids, err := s.favoriteIDs(ctx, user.ID)
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == topicID {
			return true
		}
	}
	return false
}

// GetFavorites returns the session user's favorite topics in collection
// order. Ids of deleted topics are skipped.
func (s *ForumService) GetFavorites(ctx context.Context) []models.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Topic, 0)
	user := s.auth.CurrentUser()
	if user == nil {
		return out
	}
	ids, err := s.favoriteIDs(ctx, user.ID)
	if err != nil {
		return out
	}
	for _, t := range s.topics {
		if slices.Contains(ids, t.ID) {
			out = append(out, t.Clone())
		}
	}
	return out
}
