package utils

import (
	"math/rand"
	"time"
)

var avatars = []string{"🎮", "🕹️", "👾", "🎲", "🏆", "🚀", "🐉", "🦊", "🐼", "🤖", "🧙", "⚔️"}

// GetUserLevel 根据活跃度返回用户等级
// Activity is topics + comments + likes received.
func GetUserLevel(activity int) (name string, icon string) {
	switch {
	case activity >= 500:
		return "Legend", "🏆"
	case activity >= 100:
		return "Veteran", "⚔️"
	case activity >= 30:
		return "Regular", "🎮"
	case activity >= 5:
		return "Player", "🕹️"
	default:
		return "Newbie", "🥚"
	}
}

// GetDaysSinceJoined returns whole days since registration.
func GetDaysSinceJoined(registered time.Time) int {
	return int(time.Since(registered).Hours() / 24)
}

// GetRandomEmoji returns a random emoji used as the default avatar.
func GetRandomEmoji() string {
	return avatars[rand.Intn(len(avatars))]
}

// GetCommonEmojis lists the avatars offered on the profile form.
func GetCommonEmojis() []string {
	return append([]string(nil), avatars...)
}
