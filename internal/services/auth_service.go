package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/store"
)

// ErrInvalidCredentials is deliberately generic: it does not distinguish an
// unknown email from a wrong password, so account existence never leaks.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles login, logout and the current-user session. The
// session survives restarts via the store's session slot.
type AuthService struct {
	mu      sync.RWMutex
	store   *store.Store
	current *models.User
}

// NewAuthService restores any persisted session and returns the service.
func NewAuthService(st *store.Store) (*AuthService, error) {
	s := &AuthService{store: st}

	session, err := st.Session()
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if session != nil {
		user := session.User.WithoutPassword()
		s.current = &user
	}
	return s, nil
}

// Login verifies credentials against the stored user list. On success the
// session is persisted and the user, minus password, becomes current. The
// token is an opaque derived string; it is not a verified credential.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	users, err := s.store.Users()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var match *models.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			match = &users[i]
			break
		}
	}
	if match == nil {
		return nil, ErrInvalidCredentials
	}

	user := match.WithoutPassword()
	session := models.Session{
		User:  user,
		Token: fmt.Sprintf("token-%s-%d", user.ID, time.Now().Unix()),
	}
	if err := s.store.SaveSession(session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	out := user
	return &out, nil
}

// Logout clears the current user and the persisted session.
func (s *AuthService) Logout() error {
	if err := s.store.ClearSession(); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}
