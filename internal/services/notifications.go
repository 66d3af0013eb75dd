package services

import (
	"context"
	"slices"

	"gameforum/internal/models"

	"github.com/google/uuid"
)

// notify appends n with a fresh id and timestamp. Self-notifications are
// dropped. Callers hold s.mu and persist afterwards.
func (s *ForumService) notify(n models.Notification) {
	if n.UserID == n.ActorID {
		return
	}
	n.ID = uuid.NewString()
	n.CreatedAt = s.clock()
	n.Read = false
	s.notifications = append(s.notifications, n)
}

// ListNotifications returns the session user's notifications, newest first.
func (s *ForumService) ListNotifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, 0)
	user := s.auth.CurrentUser()
	if user == nil {
		return out
	}
	for _, n := range s.notifications {
		if n.UserID == user.ID {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Notification) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func (s *ForumService) UnreadNotificationsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return 0
	}
	count := 0
	for _, n := range s.notifications {
		if n.UserID == user.ID && !n.Read {
			count++
		}
	}
	return count
}

// MarkNotificationAsRead marks one of the session user's notifications read.
// Other users' notifications and unknown ids are left alone.
func (s *ForumService) MarkNotificationAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return models.ErrNotAuthenticated
	}
	for i, n := range s.notifications {
		if n.ID == id && n.UserID == user.ID {
			if n.Read {
				return nil
			}
			s.notifications[i].Read = true
			return s.saveNotifications(ctx)
		}
	}
	return nil
}

func (s *ForumService) MarkAllNotificationsAsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return models.ErrNotAuthenticated
	}
	changed := false
	for i, n := range s.notifications {
		if n.UserID == user.ID && !n.Read {
			s.notifications[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveNotifications(ctx)
}
