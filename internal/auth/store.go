package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// Store holds the current session. It is the single source of the bearer
// token attached to outgoing API calls.
type Store struct {
	storage storage.Storage
	logger  logrus.FieldLogger

	mu      sync.RWMutex
	session Session
}

func NewStore(s storage.Storage, logger logrus.FieldLogger) *Store {
	return &Store{
		storage: s,
		logger:  logger.WithField("store", "auth"),
	}
}

// SetAuth replaces the session with user and token and marks it
// authenticated.
func (s *Store) SetAuth(ctx context.Context, user User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.session = Session{User: &u, Token: token, IsAuthenticated: true}
	s.logger.WithFields(logrus.Fields{"userId": user.ID, "role": user.Role}).Debug("session set")
	return s.saveLocked(ctx)
}

// UseToken replaces the in-memory session with a bare token, such as one
// supplied on the command line. Nothing is persisted: the stored session is
// only overwritten once SetAuth resolves the user.
func (s *Store) UseToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{Token: token}
}

func (s *Store) ClearAuth(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
	s.logger.Debug("session cleared")
	return s.saveLocked(ctx)
}

// Initialize adopts the persisted session when it holds both a user and a
// token. Anything else, including unreadable storage, keeps the in-memory
// session and is only logged.
func (s *Store) Initialize(ctx context.Context) {
	stored, err := storage.Load[Session](ctx, s.storage, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no stored session found")
			return
		}
		s.logger.WithError(err).Error("initialize session from storage")
		return
	}

	if !stored.complete() {
		s.logger.Info("stored session incomplete, keeping current state")
		return
	}

	s.mu.Lock()
	u := *stored.User
	s.session = Session{User: &u, Token: stored.Token, IsAuthenticated: true}
	s.mu.Unlock()

	s.logger.WithField("userId", u.ID).Debug("session restored from storage")
}

// Session returns a copy of the current session.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated
}

// Token returns the bearer token, or "" when there is none.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *Store) saveLocked(ctx context.Context) error {
	if err := storage.Save(ctx, s.storage, StorageKey, s.session); err != nil {
		s.logger.WithError(err).Error("persist session")
		return err
	}
	return nil
}
