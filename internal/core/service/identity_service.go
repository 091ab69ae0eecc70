package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// IdentityService implements registration, login and session tracking.
//
// Authentication is deliberately weak: the fixture accounts share one
// password, and registered users have no stored password at all, so any
// password is accepted for them. Every such login is logged at warn level.
type IdentityService struct {
	repo     ports.StateRepository
	seedHash []byte
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	users    []domain.User
	sessions map[string]*sessionState
}

// sessionState caches the signed-in user of a session. A state with a nil
// user is only kept when a logout could not be persisted.
type sessionState struct {
	user *domain.User
	seen time.Time
}

// NewIdentityService hashes seedPassword once so that fixture logins are
// compared with bcrypt rather than as plain strings.
func NewIdentityService(repo ports.StateRepository, seedPassword string, log zerolog.Logger) (*IdentityService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &IdentityService{
		repo:     repo,
		seedHash: hash,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		sessions: make(map[string]*sessionState),
	}, nil
}

// Load reads the user collection. A storage failure leaves the service empty.
func (s *IdentityService) Load(ctx context.Context) {
	users, err := s.repo.Users(ctx)
	absorbStorageError(s.log, "load", collectionUsers, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
}

func (s *IdentityService) Register(ctx context.Context, sessionID string, in ports.RegisterInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	for _, u := range s.users {
		if u.Email == in.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	user := domain.User{
		ID:        newID(),
		Name:      in.Name,
		Username:  in.Username,
		Email:     in.Email,
		Role:      domain.RoleCustomer,
		CreatedAt: s.now(),
	}
	s.users = append(s.users, user)
	absorbStorageError(s.log, "save", collectionUsers, s.repo.SaveUsers(ctx, s.users))

	s.setSessionUser(ctx, sessionID, user)
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	out := user
	return &out, nil
}

func (s *IdentityService) Login(ctx context.Context, sessionID, username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findByUsername(username)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if domain.IsSeedAccount(username) {
		if bcrypt.CompareHashAndPassword(s.seedHash, []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
	} else {
		s.log.Warn().Str("username", username).Msg("login accepted without password verification")
	}

	s.setSessionUser(ctx, sessionID, user)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	out := user
	return &out, nil
}

func (s *IdentityService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.RemoveSessionUser(ctx, sessionID); err != nil {
		absorbStorageError(s.log, "save", collectionSessionUser, err)
		s.sessions[sessionID] = &sessionState{seen: s.now()}
		return nil
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *IdentityService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		user, err := s.repo.SessionUser(ctx, sessionID)
		absorbStorageError(s.log, "load", collectionSessionUser, err)
		if user == nil {
			return nil, nil
		}
		st = &sessionState{user: user}
		s.sessions[sessionID] = st
	}
	st.seen = s.now()
	if st.user == nil {
		return nil, nil
	}
	out := *st.user
	return &out, nil
}

// EvictIdle drops cached sessions last touched before cutoff and reports how
// many were removed. Evicted sessions are reloaded from storage on next use.
func (s *IdentityService) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for sid, st := range s.sessions {
		if st.seen.Before(cutoff) {
			delete(s.sessions, sid)
			n++
		}
	}
	return n
}

// Users returns a copy of every known user.
func (s *IdentityService) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *IdentityService) findByUsername(username string) (domain.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// setSessionUser must be called with s.mu held.
func (s *IdentityService) setSessionUser(ctx context.Context, sessionID string, user domain.User) {
	u := user
	s.sessions[sessionID] = &sessionState{user: &u, seen: s.now()}
	absorbStorageError(s.log, "save", collectionSessionUser, s.repo.SaveSessionUser(ctx, sessionID, user))
}
