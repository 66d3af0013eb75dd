package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"gameforum/internal/models"
	"gameforum/internal/storage"
	"gameforum/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listingCacheSize = 256
	listingCacheTTL  = time.Minute
)

// TopicQuery selects and orders a topic listing. An empty Category or
// models.CategoryAll disables the category filter.
type TopicQuery struct {
	Category models.Category
	SortBy   models.SortOrder
	Search   string
}

type CreateTopicInput struct {
	Title    string
	Content  string
	Category models.Category
	Tags     []string
}

// Stats are the home page counters.
type Stats struct {
	Users    int `json:"users"`
	Topics   int `json:"topics"`
	Comments int `json:"comments"`
}

// ForumService owns topics, comments, notifications and favorites. Every
// mutation rewrites the touched collections in storage.
type ForumService struct {
	mu   sync.Mutex
	auth *AuthService
	kv   storage.KV
	log  *zap.Logger

	topicStore   *storage.Collection[models.Topic]
	commentStore *storage.Collection[models.Comment]
	noticeStore  *storage.Collection[models.Notification]

	topics        []models.Topic
	comments      []models.Comment
	notifications []models.Notification
	favorites     map[string][]string // by user id, loaded on first use

	listings *utils.Cache[[]models.Topic]
	clock    func() time.Time
}

func NewForumService(ctx context.Context, kv storage.KV, auth *AuthService, log *zap.Logger) (*ForumService, error) {
	listings, err := utils.NewCache[[]models.Topic](listingCacheSize, listingCacheTTL)
	if err != nil {
		return nil, err
	}

	s := &ForumService{
		auth:         auth,
		kv:           kv,
		log:          log,
		topicStore:   storage.NewCollection[models.Topic](kv, storage.KeyTopics, log),
		commentStore: storage.NewCollection[models.Comment](kv, storage.KeyComments, log),
		noticeStore:  storage.NewCollection[models.Notification](kv, storage.KeyNotifications, log),
		favorites:    make(map[string][]string),
		listings:     listings,
		clock:        time.Now,
	}

	if s.topics, err = s.topicStore.Load(ctx); err != nil {
		return nil, err
	}
	if s.comments, err = s.commentStore.Load(ctx); err != nil {
		return nil, err
	}
	if s.notifications, err = s.noticeStore.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// GetTopics filters and sorts the topic collection. It never mutates state.
func (s *ForumService) GetTopics(q TopicQuery) []models.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("topics:%s:%s:%s", q.Category, q.SortBy, strings.ToLower(q.Search))
	if cached, ok := s.listings.Get(key); ok {
		return cloneTopics(cached)
	}

	result := make([]models.Topic, 0, len(s.topics))
	search := strings.ToLower(q.Search)
	for _, t := range s.topics {
		if q.Category != "" && q.Category != models.CategoryAll && t.Category != q.Category {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		result = append(result, t.Clone())
	}

	switch q.SortBy {
	case models.SortNewest:
		slices.SortStableFunc(result, func(a, b models.Topic) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case models.SortOldest:
		slices.SortStableFunc(result, func(a, b models.Topic) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case models.SortMostLiked:
		slices.SortStableFunc(result, func(a, b models.Topic) int { return len(b.Likes) - len(a.Likes) })
	}

	s.listings.Set(key, result)
	return cloneTopics(result)
}

func matchesSearch(t models.Topic, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// GetTopic returns the topic with the given id.
func (s *ForumService) GetTopic(id string) (models.Topic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.topicIndex(id); i >= 0 {
		return s.topics[i].Clone(), true
	}
	return models.Topic{}, false
}

// TopicsByUser lists a user's topics, newest first.
func (s *ForumService) TopicsByUser(userID string) []models.Topic {
	all := s.GetTopics(TopicQuery{SortBy: models.SortNewest})
	out := all[:0]
	for _, t := range all {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (s *ForumService) Stats() Stats {
	users := s.auth.CountUsers()

	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Users: users, Topics: len(s.topics), Comments: len(s.comments)}
}

func (s *ForumService) CreateTopic(ctx context.Context, in CreateTopicInput) (models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return models.Topic{}, models.NewUnauthorizedError("You must be logged in to create a topic")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Topic{}, models.NewValidationError("Title is required")
	}
	if !in.Category.Valid() {
		return models.Topic{}, models.NewValidationError(fmt.Sprintf("Unknown category %q", in.Category))
	}

	topic := models.Topic{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    in.Content,
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Category:   in.Category,
		Tags:       normalizeTags(in.Tags),
		CreatedAt:  s.clock(),
		Likes:      []string{},
	}
	s.topics = append(s.topics, topic)
	if err := s.saveTopics(ctx); err != nil {
		return models.Topic{}, err
	}
	if err := s.auth.AdjustStats(ctx, user.ID, StatsTopicCreated); err != nil {
		return models.Topic{}, err
	}

	s.log.Info("topic created", zap.String("topic_id", topic.ID), zap.String("user_id", user.ID))
	return topic.Clone(), nil
}

// UpdateTopic merges patch into a topic owned by the session user.
func (s *ForumService) UpdateTopic(ctx context.Context, id string, patch models.TopicPatch) (models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.topicIndex(id)
	if i < 0 {
		return models.Topic{}, models.ErrTopicNotFound
	}
	if err := s.requireOwner(s.topics[i].UserID, "You can only edit your own topics"); err != nil {
		return models.Topic{}, err
	}

	topic := s.topics[i].Clone()
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Topic{}, models.NewValidationError("Title is required")
		}
		topic.Title = title
	}
	if patch.Content != nil {
		topic.Content = *patch.Content
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return models.Topic{}, models.NewValidationError(fmt.Sprintf("Unknown category %q", *patch.Category))
		}
		topic.Category = *patch.Category
	}
	if patch.Tags != nil {
		topic.Tags = normalizeTags(patch.Tags)
	}
	now := s.clock()
	topic.UpdatedAt = &now

	s.topics[i] = topic
	if err := s.saveTopics(ctx); err != nil {
		return models.Topic{}, err
	}
	return topic.Clone(), nil
}

// DeleteTopic removes a topic owned by the session user together with its
// comments and every notification about the topic or those comments.
func (s *ForumService) DeleteTopic(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.topicIndex(id)
	if i < 0 {
		return models.ErrTopicNotFound
	}
	topic := s.topics[i]
	if err := s.requireOwner(topic.UserID, "You can only delete your own topics"); err != nil {
		return err
	}

	removed := make(map[string]bool)
	comments := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		if c.TopicID == id {
			removed[c.ID] = true
			continue
		}
		comments = append(comments, c)
	}

	notifications := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.RefersTo(models.SourceTopic, id) {
			continue
		}
		if n.SourceType == models.SourceComment && removed[n.SourceID] {
			continue
		}
		notifications = append(notifications, n)
	}

	s.topics = slices.Delete(s.topics, i, i+1)
	s.comments = comments
	s.notifications = notifications

	if err := s.saveTopics(ctx); err != nil {
		return err
	}
	if err := s.saveComments(ctx); err != nil {
		return err
	}
	if err := s.saveNotifications(ctx); err != nil {
		return err
	}
	if err := s.auth.AdjustStats(ctx, topic.UserID, StatsTopicDeleted); err != nil {
		return err
	}

	s.log.Info("topic deleted",
		zap.String("topic_id", id),
		zap.Int("comments_removed", len(removed)))
	return nil
}

// LikeTopic toggles the session user's like and reports whether the topic is
// now liked. Only a new like by someone other than the owner notifies.
func (s *ForumService) LikeTopic(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return false, models.NewUnauthorizedError("You must be logged in to like a topic")
	}
	i := s.topicIndex(id)
	if i < 0 {
		return false, models.ErrTopicNotFound
	}

	topic := s.topics[i]
	likes, liked := models.ToggleID(topic.Likes, user.ID)
	topic.Likes = likes
	s.topics[i] = topic
	if err := s.saveTopics(ctx); err != nil {
		return false, err
	}

	if liked && topic.UserID != user.ID {
		s.notify(models.Notification{
			UserID:     topic.UserID,
			Type:       models.NotificationTypeLike,
			SourceID:   topic.ID,
			SourceName: topic.Title,
			SourceType: models.SourceTopic,
			ActorID:    user.ID,
			ActorName:  user.Username,
		})
		if err := s.saveNotifications(ctx); err != nil {
			return liked, err
		}
		if err := s.auth.AdjustStats(ctx, topic.UserID, StatsLikeReceived); err != nil {
			return liked, err
		}
	}
	return liked, nil
}

// ViewTopic counts a visit. Unknown ids are ignored.
func (s *ForumService) ViewTopic(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.topicIndex(id)
	if i < 0 {
		return nil
	}
	s.topics[i].Views++
	return s.saveTopics(ctx)
}

// ReportTopic records a complaint about a topic in the log.
func (s *ForumService) ReportTopic(ctx context.Context, id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.auth.CurrentUser()
	if user == nil {
		return models.ErrNotAuthenticated
	}
	if s.topicIndex(id) < 0 {
		return models.ErrTopicNotFound
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.NewValidationError("Please explain why you are reporting this topic")
	}
	s.log.Info("topic reported",
		zap.String("topic_id", id),
		zap.String("reporter_id", user.ID),
		zap.String("reason", reason))
	return nil
}

// requireOwner fails unless the session user is ownerID.
func (s *ForumService) requireOwner(ownerID, message string) error {
	user := s.auth.CurrentUser()
	if user == nil || user.ID != ownerID {
		return models.NewForbiddenError(message)
	}
	return nil
}

func (s *ForumService) topicIndex(id string) int {
	for i, t := range s.topics {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *ForumService) saveTopics(ctx context.Context) error {
	s.listings.Purge()
	return s.persist(ctx, s.topicStore.SaveAll(ctx, s.topics), storage.KeyTopics)
}

func (s *ForumService) saveComments(ctx context.Context) error {
	return s.persist(ctx, s.commentStore.SaveAll(ctx, s.comments), storage.KeyComments)
}

func (s *ForumService) saveNotifications(ctx context.Context) error {
	return s.persist(ctx, s.noticeStore.SaveAll(ctx, s.notifications), storage.KeyNotifications)
}

func (s *ForumService) persist(_ context.Context, err error, key string) error {
	if err != nil {
		s.log.Error("persist collection", zap.String("key", key), zap.Error(err))
		return models.NewInternalError(err)
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func cloneTopics(topics []models.Topic) []models.Topic {
	out := make([]models.Topic, len(topics))
	for i, t := range topics {
		out[i] = t.Clone()
	}
	return out
}
