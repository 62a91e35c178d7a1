package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sciencelabshs/neonlink/database"
	"golang.org/x/sync/errgroup"
)

// dummyPasswordHash is verified against when a login targets an unknown
// username, so the response time does not reveal whether the user exists.
// The verification result is discarded for unknown users.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service orchestrates registration, login, password rotation and user
// administration against the user store, the password hasher and the
// session registry.
type Service struct {
	store    database.UserStore
	hasher   PasswordHasher
	sessions *Registry

	registrationEnabled bool

	// mu serializes user creation/deletion with the bootstrap flag
	// recomputation so no request observes a half-updated flag pair.
	mu           sync.Mutex
	hasAnyUser   bool
	hasAdminUser bool
}

// NewService creates the auth service and loads the bootstrap flags from the
// store.
func NewService(ctx context.Context, store database.UserStore, hasher PasswordHasher, sessions *Registry, registrationEnabled bool) (*Service, error) {
	s := &Service{
		store:               store,
		hasher:              hasher,
		sessions:            sessions,
		registrationEnabled: registrationEnabled,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.recompute(ctx); err != nil {
		return nil, fmt.Errorf("failed to load bootstrap state: %w", err)
	}
	return s, nil
}

// Sessions returns the session registry backing this service.
func (s *Service) Sessions() *Registry {
	return s.sessions
}

// recompute refreshes the bootstrap flags from the store. Callers must hold mu.
func (s *Service) recompute(ctx context.Context) error {
	var users, admins int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.store.CountAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		admins, err = s.store.CountAdmins(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.hasAnyUser = users > 0
	s.hasAdminUser = s.hasAnyUser && admins > 0
	return nil
}

// Register creates a new user. The first user registered while no admin
// exists becomes the bootstrap admin; everyone after that starts as a
// regular user.
func (s *Service) Register(ctx context.Context, username, password string) (*database.User, error) {
	if !s.registrationEnabled {
		return nil, ErrRegistrationDisabled
	}

	exists, err := s.store.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	isAdmin := !s.hasAdminUser

	user, err := s.store.Create(ctx, username, hash, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.recompute(ctx); err != nil {
		return nil, fmt.Errorf("failed to refresh bootstrap state: %w", err)
	}

	log.Info("user registered", "username", user.Username, "admin", user.IsAdmin)
	return user, nil
}

// Login verifies the credentials and creates a session. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	targetHash := dummyPasswordHash
	var user *database.User

	u, err := s.store.GetByUsername(ctx, username)
	switch {
	case err == nil:
		user = u
		targetHash = u.PasswordHash
	case errors.Is(err, database.ErrUserNotFound):
		// keep the dummy hash so verification still runs
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, targetHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if user == nil || !ok {
		return nil, ErrInvalidCredentials
	}

	sess := s.sessions.Create(user.ID, user.Username, user.IsAdmin)
	log.Debug("user logged in", "username", user.Username)
	return sess, nil
}

// Logout destroys the session for the token. Logging out without an active
// session is not an error.
func (s *Service) Logout(token string) {
	s.sessions.Destroy(token)
}

// ChangePassword rotates the user's own password after verifying the current
// one. Other active sessions for the user stay valid.
func (s *Service) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Info("password changed", "username", user.Username)
	return nil
}

// SetAdminStatus updates the admin flag on the target user and, when
// newPassword is non-empty, rotates their password in the same call.
func (s *Service) SetAdminStatus(ctx context.Context, targetID uint, isAdmin bool, newPassword string) (*database.User, error) {
	if _, err := s.store.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.store.UpdateIsAdmin(ctx, targetID, isAdmin); err != nil {
		return nil, fmt.Errorf("failed to update admin flag: %w", err)
	}

	if newPassword != "" {
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.store.UpdatePasswordHash(ctx, targetID, hash); err != nil {
			return nil, fmt.Errorf("failed to update password: %w", err)
		}
	}

	user, err := s.store.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	log.Info("user updated", "username", user.Username, "admin", user.IsAdmin)
	return user, nil
}

// DeleteUser removes the target user on behalf of an admin. Admins may not
// delete their own account through this path.
func (s *Service) DeleteUser(ctx context.Context, callerID, targetID uint) error {
	if callerID == targetID {
		return ErrSelfDelete
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, targetID); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.recompute(ctx); err != nil {
		return fmt.Errorf("failed to refresh bootstrap state: %w", err)
	}

	log.Info("user deleted", "id", targetID, "by", callerID)
	return nil
}

// DeleteOwnAccount removes the calling user's own record, keyed by their
// session identity.
func (s *Service) DeleteOwnAccount(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, userID); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.recompute(ctx); err != nil {
		return fmt.Errorf("failed to refresh bootstrap state: %w", err)
	}

	log.Info("account deleted", "id", userID)
	return nil
}

// Users returns the directory listing for the admin panel.
func (s *Service) Users(ctx context.Context) ([]database.User, error) {
	return s.store.GetAll(ctx)
}

// Settings loads the dashboard settings for a user, or nil when absent.
func (s *Service) Settings(ctx context.Context, userID uint) (*database.UserSettings, error) {
	return s.store.LoadSettings(ctx, userID)
}

// Bootstrap reports the current bootstrap flag pair.
func (s *Service) Bootstrap() (hasAnyUser, hasAdminUser bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasAnyUser, s.hasAdminUser
}

// ReapStaleSessions drops sessions whose user row no longer exists and
// returns how many were removed.
func (s *Service) ReapStaleSessions(ctx context.Context) (int, error) {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	alive := make(map[uint]struct{}, len(users))
	for _, u := range users {
		alive[u.ID] = struct{}{}
	}

	dropped := s.sessions.DestroyIf(func(sess *Session) bool {
		_, ok := alive[sess.UserID]
		return !ok
	})
	if dropped > 0 {
		log.Info("reaped stale sessions", "count", dropped)
	}
	return dropped, nil
}
