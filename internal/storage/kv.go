// Package storage persists forum collections as whole JSON documents in a
// key-value backend.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Logical keys.
const (
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	KeyTopics        = "topics"
	KeyComments      = "comments"
	KeyNotifications = "notifications"
	KeyLanguage      = "language"
)

// FavoritesKey returns the key holding the favorite topic ids of a user.
func FavoritesKey(userID string) string {
	return "favorites_" + userID
}

// KV is a flat key-value store of opaque values. Set overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
