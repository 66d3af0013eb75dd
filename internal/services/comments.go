package services

import (
	"context"
	"slices"
	"strings"

	"gameforum/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// commentExcerptLength is how much of a comment a like notification quotes.
const commentExcerptLength = 50

// GetComments returns a topic's comments, oldest first.
func (s *ForumService) GetComments(topicID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.TopicID == topicID {
			out = append(out, c.Clone())
		}
	}
	slices.SortStableFunc(out, func(a, b models.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

// GetComment returns the comment with the given id.
func (s *ForumService) GetComment(id string) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.commentIndex(id); i >= 0 {
		return s.comments[i].Clone(), true
	}
	return models.Comment{}, false
}

// CreateComment replies to a topic as the session user and notifies the topic
// owner when someone else replied.
func (s *ForumService) CreateComment(ctx context.Context, topicID, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return models.Comment{}, models.NewUnauthorizedError("You must be logged in to comment")
	}
	ti := s.topicIndex(topicID)
	if ti < 0 {
		return models.Comment{}, models.ErrTopicNotFound
	}
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, models.NewValidationError("Comment cannot be empty")
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		TopicID:    topicID,
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Content:    content,
		CreatedAt:  s.clock(),
		Likes:      []string{},
	}
	s.comments = append(s.comments, comment)
	s.topics[ti].CommentsCount++
	topic := s.topics[ti]

	if err := s.saveComments(ctx); err != nil {
		return models.Comment{}, err
	}
	if err := s.saveTopics(ctx); err != nil {
		return models.Comment{}, err
	}

	if topic.UserID != user.ID {
		s.notify(models.Notification{
			UserID:     topic.UserID,
			Type:       models.NotificationTypeComment,
			SourceID:   topic.ID,
			SourceName: topic.Title,
			SourceType: models.SourceTopic,
			ActorID:    user.ID,
			ActorName:  user.Username,
		})
		if err := s.saveNotifications(ctx); err != nil {
			return models.Comment{}, err
		}
	}
	if err := s.auth.AdjustStats(ctx, user.ID, StatsCommentCreated); err != nil {
		return models.Comment{}, err
	}

	s.log.Info("comment created", zap.String("comment_id", comment.ID), zap.String("topic_id", topicID))
	return comment.Clone(), nil
}

func (s *ForumService) UpdateComment(ctx context.Context, id, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.commentIndex(id)
	if i < 0 {
		return models.Comment{}, models.ErrCommentNotFound
	}
	if err := s.requireOwner(s.comments[i].UserID, "You can only edit your own comments"); err != nil {
		return models.Comment{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, models.NewValidationError("Comment cannot be empty")
	}

	s.comments[i].Content = content
	if err := s.saveComments(ctx); err != nil {
		return models.Comment{}, err
	}
	return s.comments[i].Clone(), nil
}

// DeleteComment removes a comment owned by the session user and the
// notifications about it. The topic's comment count never drops below zero.
func (s *ForumService) DeleteComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.commentIndex(id)
	if i < 0 {
		return models.ErrCommentNotFound
	}
	comment := s.comments[i]
	if err := s.requireOwner(comment.UserID, "You can only delete your own comments"); err != nil {
		return err
	}

	s.comments = slices.Delete(s.comments, i, i+1)
	if ti := s.topicIndex(comment.TopicID); ti >= 0 {
		s.topics[ti].CommentsCount = floorZero(s.topics[ti].CommentsCount - 1)
	}
	s.notifications = slices.DeleteFunc(s.notifications, func(n models.Notification) bool {
		return n.RefersTo(models.SourceComment, id)
	})

	if err := s.saveComments(ctx); err != nil {
		return err
	}
	if err := s.saveTopics(ctx); err != nil {
		return err
	}
	if err := s.saveNotifications(ctx); err != nil {
		return err
	}
	return s.auth.AdjustStats(ctx, comment.UserID, StatsCommentDeleted)
}

// LikeComment toggles the session user's like on a comment and reports whether
// the comment is now liked.
func (s *ForumService) LikeComment(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return false, models.NewUnauthorizedError("You must be logged in to like a comment")
	}
	i := s.commentIndex(id)
	if i < 0 {
		return false, models.ErrCommentNotFound
	}

	comment := s.comments[i]
	likes, liked := models.ToggleID(comment.Likes, user.ID)
	comment.Likes = likes
	s.comments[i] = comment
	if err := s.saveComments(ctx); err != nil {
		return false, err
	}

	if liked && comment.UserID != user.ID {
		s.notify(models.Notification{
			UserID:     comment.UserID,
			Type:       models.NotificationTypeLike,
			SourceID:   comment.ID,
			SourceName: comment.Excerpt(commentExcerptLength),
			SourceType: models.SourceComment,
			ActorID:    user.ID,
			ActorName:  user.Username,
		})
		if err := s.saveNotifications(ctx); err != nil {
			return liked, err
		}
		if err := s.auth.AdjustStats(ctx, comment.UserID, StatsLikeReceived); err != nil {
			return liked, err
		}
	}
	return liked, nil
}

func (s *ForumService) commentIndex(id string) int {
	for i, c := range s.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}
