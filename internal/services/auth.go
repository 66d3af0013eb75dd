package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"gameforum/internal/models"
	"gameforum/internal/storage"
	"gameforum/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// AuthService owns the registered-user directory and the single active session.
type AuthService struct {
	mu        sync.Mutex
	log       *zap.Logger
	users     *storage.Collection[models.User]
	session   *storage.Document[models.User]
	directory []models.User
	current   *models.User // password hash always stripped
	clock     func() time.Time
}

// NewAuthService loads the directory and restores a persisted session, if any.
// A corrupt session value is cleared and no session is active.
func NewAuthService(ctx context.Context, kv storage.KV, log *zap.Logger) (*AuthService, error) {
	s := &AuthService{
		log:     log,
		users:   storage.NewCollection[models.User](kv, storage.KeyUsers, log),
		session: storage.NewDocument[models.User](kv, storage.KeyCurrentUser, log),
		clock:   time.Now,
	}

	directory, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.directory = directory

	current, ok, err := s.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		current = current.Public()
		s.current = &current
	}
	return s, nil
}

// CurrentUser returns a copy of the session user, or nil when logged out.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// GetUser looks a user up in the directory. The hash is stripped.
func (s *AuthService) GetUser(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexByID(id); i >= 0 {
		return s.directory[i].Public(), true
	}
	return models.User{}, false
}

func (s *AuthService) CountUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.directory)
}

// Register adds a user to the directory and logs them in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, models.NewValidationError("Username and email are required")
	}
	if len(password) < MinPasswordLength {
		return nil, models.NewValidationError("Password must be at least 6 characters")
	}

	for _, u := range s.directory {
		if u.Username == username {
			s.log.Info("registration rejected", zap.String("reason", "username taken"), zap.String("username", username))
			return nil, models.ErrUsernameTaken
		}
	}
	for _, u := range s.directory {
		if u.Email == email {
			s.log.Info("registration rejected", zap.String("reason", "email taken"), zap.String("email", email))
			return nil, models.ErrEmailTaken
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return nil, models.NewInternalError(err)
	}

	user := models.User{
		ID:               uuid.NewString(),
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Avatar:           utils.GetRandomEmoji(),
		RegistrationDate: s.clock(),
	}

	directory := append(append([]models.User{}, s.directory...), user)
	if err := s.saveDirectory(ctx, directory); err != nil {
		return nil, err
	}
	if err := s.startSession(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	public := user.Public()
	return &public, nil
}

// Login establishes the session for the user with the given email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	i := s.indexByEmail(email)
	if i < 0 {
		s.log.Info("login failed", zap.String("reason", "unknown email"), zap.String("email", email))
		return nil, models.ErrUserNotFound
	}
	user := s.directory[i]
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Info("login failed", zap.String("reason", "bad password"), zap.String("user_id", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	if err := s.startSession(ctx, user); err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// Logout clears the session unconditionally.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.session.Clear(ctx); err != nil {
		s.log.Error("clear session", zap.Error(err))
		return models.NewInternalError(err)
	}
	return nil
}

// UpdateProfile merges patch into the session user's directory record and
// session. Username and email uniqueness is not re-checked.
func (s *AuthService) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, models.ErrNotAuthenticated
	}
	i := s.indexByID(s.current.ID)
	if i < 0 {
		s.log.Error("session user missing from directory", zap.String("user_id", s.current.ID))
		return nil, models.ErrUserNotFound
	}

	user := s.directory[i]
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Password != nil {
		if len(*patch.Password) < MinPasswordLength {
			return nil, models.NewValidationError("Password must be at least 6 characters")
		}
		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	directory := append([]models.User{}, s.directory...)
	directory[i] = user
	if err := s.saveDirectory(ctx, directory); err != nil {
		return nil, err
	}
	if err := s.startSession(ctx, user); err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// AdjustStats applies delta to a user's counters in the directory and, when
// the user is logged in, in the session. Unknown users are ignored.
func (s *AuthService) AdjustStats(ctx context.Context, userID string, delta StatsDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(userID)
	if i < 0 {
		s.log.Debug("stats for unknown user skipped", zap.String("user_id", userID))
		return nil
	}

	directory := append([]models.User{}, s.directory...)
	delta.apply(&directory[i])
	if err := s.saveDirectory(ctx, directory); err != nil {
		return err
	}
	if s.current != nil && s.current.ID == userID {
		return s.startSession(ctx, directory[i])
	}
	return nil
}

// seedUsers appends users that are not yet in the directory.
func (s *AuthService) seedUsers(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	directory := append([]models.User{}, s.directory...)
	for _, u := range users {
		if s.indexByID(u.ID) < 0 && s.indexByEmail(u.Email) < 0 {
			directory = append(directory, u)
		}
	}
	return s.saveDirectory(ctx, directory)
}

func (s *AuthService) startSession(ctx context.Context, user models.User) error {
	public := user.Public()
	s.current = &public
	if err := s.session.Save(ctx, public); err != nil {
		s.log.Error("persist session", zap.Error(err))
		return models.NewInternalError(err)
	}
	return nil
}

func (s *AuthService) saveDirectory(ctx context.Context, directory []models.User) error {
	if err := s.users.SaveAll(ctx, directory); err != nil {
		s.log.Error("persist users", zap.Error(err))
		return models.NewInternalError(err)
	}
	s.directory = directory
	return nil
}

func (s *AuthService) indexByID(id string) int {
	for i, u := range s.directory {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *AuthService) indexByEmail(email string) int {
	for i, u := range s.directory {
		if u.Email == email {
			return i
		}
	}
	return -1
}
