package models

import (
	"time"
)

type Comment struct {
	ID         string    `json:"id"`
	TopicID    string    `json:"topicId"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Likes      []string  `json:"likes"`
}

func (c Comment) Clone() Comment {
	c.Likes = append([]string{}, c.Likes...)
	return c
}

func (c Comment) LikedBy(userID string) bool {
	return containsID(c.Likes, userID)
}

// Excerpt returns the first n runes of the content, suffixed with "..." when cut.
func (c Comment) Excerpt(n int) string {
	runes := []rune(c.Content)
	if len(runes) <= n {
		return c.Content
	}
	return string(runes[:n]) + "..."
}
