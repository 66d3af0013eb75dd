package services

import (
	"context"
	"encoding/json"
	"testing"

	"gameforum/internal/models"
	"gameforum/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.auth.Register(ctx, "alice", "a@x.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.PasswordHash, "session copy never carries the password")
	assert.NotEmpty(t, u.Avatar)
	assert.Zero(t, u.TopicsCount)
	assert.Zero(t, u.CommentsCount)
	assert.Zero(t, u.LikesReceived)

	current := env.auth.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, u.ID, current.ID)

	raw, err := env.kv.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	var stored []models.User
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0].PasswordHash, "directory keeps the hash")
	assert.NotEqual(t, "secret1", stored[0].PasswordHash)

	raw, err = env.kv.Get(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "passwordHash")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, "alice", "other@x.com", "secret1")
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
	assert.Equal(t, 1, env.auth.CountUsers(), "directory unchanged")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, "bob", "a@x.com", "secret1")
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.Equal(t, 1, env.auth.CountUsers())
}

func TestRegister_UniquenessIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, "alice", "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = env.auth.Register(ctx, "Alice", "A@x.com", "secret1")
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "  ", "a@x.com", "secret1"},
		{"empty email", "alice", "", "secret1"},
		{"short password", "alice", "a@x.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.auth.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.Equal(t, models.CodeValidation, errCode(err))
			assert.Zero(t, env.auth.CountUsers())
			assert.Nil(t, env.auth.CurrentUser())
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	require.NoError(t, env.auth.Logout(ctx))

	_, err := env.auth.Login(ctx, "nobody@x.com", testPassword)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Nil(t, env.auth.CurrentUser())

	_, err = env.auth.Login(ctx, alice.Email, "wrong-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Nil(t, env.auth.CurrentUser())

	u, err := env.auth.Login(ctx, alice.Email, testPassword)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, alice.ID, env.auth.CurrentUser().ID)
}

func TestLogin_TrimsEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.auth.Register(ctx, "alice", " a@x.com ", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	require.NoError(t, env.auth.Logout(ctx))

	_, err = env.auth.Login(ctx, " a@x.com", testPassword)
	require.NoError(t, err)
	_, err = env.auth.Login(ctx, "a@x.com  ", testPassword)
	assert.NoError(t, err)
}

func TestLogout_ClearsPersistedSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	require.NoError(t, env.auth.Logout(ctx))
	assert.Nil(t, env.auth.CurrentUser())

	_, err := env.kv.Get(ctx, storage.KeyCurrentUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// unconditional
	assert.NoError(t, env.auth.Logout(ctx))
}

func TestSessionRestoredOnStart(t *testing.T) {
	kv := storage.NewMemory()
	env := newTestEnvWithKV(t, kv)
	alice := env.register(t, "alice")

	restarted, err := NewAuthService(context.Background(), kv, zap.NewNop())
	require.NoError(t, err)

	current := restarted.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, alice.ID, current.ID)
	assert.Equal(t, 1, restarted.CountUsers())
}

func TestCorruptSessionIsCleared(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyCurrentUser, []byte("{broken")))

	auth, err := NewAuthService(ctx, kv, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, auth.CurrentUser())

	_, err = kv.Get(ctx, storage.KeyCurrentUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	bio := "I play everything"
	avatar := "🐉"
	u, err := env.auth.UpdateProfile(ctx, models.ProfilePatch{Bio: &bio, Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, avatar, u.Avatar)
	assert.Equal(t, "alice", u.Username, "untouched fields are kept")

	assert.Equal(t, bio, env.auth.CurrentUser().Bio)
	assert.Equal(t, bio, env.user(t, alice.ID).Bio)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	short := "123"
	_, err := env.auth.UpdateProfile(ctx, models.ProfilePatch{Password: &short})
	assert.Equal(t, models.CodeValidation, errCode(err))

	newPassword := "n3w-password"
	_, err = env.auth.UpdateProfile(ctx, models.ProfilePatch{Password: &newPassword})
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(ctx))

	_, err = env.auth.Login(ctx, alice.Email, testPassword)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, alice.Email, newPassword)
	assert.NoError(t, err)
}

func TestUpdateProfile_NoUniquenessRecheck(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice")
	env.register(t, "bob")

	taken := "alice"
	u, err := env.auth.UpdateProfile(context.Background(), models.ProfilePatch{Username: &taken})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestUpdateProfile_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bio := "x"
	_, err := env.auth.UpdateProfile(ctx, models.ProfilePatch{Bio: &bio})
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)

	// a session whose user vanished from the directory
	env.register(t, "alice")
	require.NoError(t, env.kv.Delete(ctx, storage.KeyUsers))
	restarted, err := NewAuthService(ctx, env.kv, zap.NewNop())
	require.NoError(t, err)
	_, err = restarted.UpdateProfile(ctx, models.ProfilePatch{Bio: &bio})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestAdjustStats_FloorsAtZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	require.NoError(t, env.auth.AdjustStats(ctx, alice.ID, StatsTopicDeleted))
	require.NoError(t, env.auth.AdjustStats(ctx, alice.ID, StatsCommentDeleted))

	u := env.user(t, alice.ID)
	assert.Zero(t, u.TopicsCount)
	assert.Zero(t, u.CommentsCount)

	require.NoError(t, env.auth.AdjustStats(ctx, alice.ID, StatsTopicCreated))
	assert.Equal(t, 1, env.user(t, alice.ID).TopicsCount)
	assert.Equal(t, 1, env.auth.CurrentUser().TopicsCount, "session copy follows the directory")

	assert.NoError(t, env.auth.AdjustStats(ctx, "ghost", StatsLikeReceived))
}
