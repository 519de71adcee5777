package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/John-Hatton/Inventory/cache"
	"github.com/John-Hatton/Inventory/model"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Fixed keys under the session namespace.
const (
	keyToken = "session:jwt"
	keyUser  = "session:user"
	keyRole  = "session:role"
)

// ErrNoSession is returned when no session is stored.
var ErrNoSession = errors.New("session: not logged in")

// Store holds the current auth session: one bearer token plus the user
// payload the server returned with it. Saved on every successful login
// or registration, cleared on logout. Validity is decided by the server
// rejecting the token; no expiry is tracked here.
type Store struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewStore creates a session Store over the given cache.
func NewStore(c cache.Cache, logger *zap.Logger) *Store {
	return &Store{cache: c, logger: logger}
}

// Save overwrites the stored token, user payload, and role.
func (s *Store) Save(ctx context.Context, token string, user *model.User) error {
	if err := s.cache.Set(ctx, keyToken, token, 0); err != nil {
		return err
	}
	role := ""
	if user != nil {
		role = user.Role
		payload, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.cache.Set(ctx, keyUser, string(payload), 0); err != nil {
			return err
		}
	} else if err := s.cache.Del(ctx, keyUser); err != nil {
		return err
	}
	if role == "" {
		role = roleFromToken(token)
	}
	return s.cache.Set(ctx, keyRole, role, 0)
}

// Token returns the stored bearer token, or ErrNoSession.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, err := s.cache.Get(ctx, keyToken)
	if err != nil || tok == "" {
		return "", ErrNoSession
	}
	return tok, nil
}

// User returns the stored user payload, or ErrNoSession.
func (s *Store) User(ctx context.Context) (*model.User, error) {
	raw, err := s.cache.Get(ctx, keyUser)
	if err != nil {
		return nil, ErrNoSession
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn("stored user payload unreadable", zap.Error(err))
		return nil, ErrNoSession
	}
	return &u, nil
}

// Role returns the stored role, or the empty string when logged out.
func (s *Store) Role(ctx context.Context) string {
	role, err := s.cache.Get(ctx, keyRole)
	if err != nil {
		return ""
	}
	return role
}

// IsLoggedIn reports whether a token is present.
func (s *Store) IsLoggedIn(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

// Logout clears every session key.
func (s *Store) Logout(ctx context.Context) error {
	return s.cache.Del(ctx, keyToken, keyUser, keyRole)
}

// roleFromToken pulls a "role" claim out of the JWT without verifying
// the signature. The token came over the pinned TLS channel and is only
// used to gate local UI affordances; the server re-checks on every call.
func roleFromToken(token string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}
