package models

import (
	"time"
)

type Topic struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	UserID        string     `json:"userId"`
	Username      string     `json:"username"`
	UserAvatar    string     `json:"userAvatar,omitempty"`
	Category      Category   `json:"category"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	Views         int        `json:"views"`
	Likes         []string   `json:"likes"` // user ids, each at most once
	CommentsCount int        `json:"commentsCount"`
}

// TopicPatch carries the editable fields of a topic. Nil fields are left untouched.
type TopicPatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Category *Category `json:"category"`
	Tags     []string  `json:"tags"`
}

// Clone returns a copy that shares no slices with t.
func (t Topic) Clone() Topic {
	t.Tags = append([]string{}, t.Tags...)
	t.Likes = append([]string{}, t.Likes...)
	if t.UpdatedAt != nil {
		updated := *t.UpdatedAt
		t.UpdatedAt = &updated
	}
	return t
}

func (t Topic) LikedBy(userID string) bool {
	return containsID(t.Likes, userID)
}
