package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultSessionPrefix = "guild:session:"

// Session is one issued access token. A user may hold several at once.
type Session struct {
	UserId    string    `json:"userId"`
	Email     string    `json:"email"`
	TokenId   string    `json:"tokenId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStore keeps live sessions in a per-user hash keyed by token id so a
// single token can be logged out and every token of a user can be revoked at once.
type SessionStore struct {
	cache  ICache
	prefix string
}

func NewSessionStore(cache ICache, prefix string) *SessionStore {
	if prefix == "" {
		prefix = defaultSessionPrefix
	}
	return &SessionStore{cache: cache, prefix: prefix}
}

func (s *SessionStore) key(userId string) string {
	return s.prefix + userId
}

func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	payload, err := sonic.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal session")
	}
	key := s.key(session.UserId)
	if err := s.cache.HSet(ctx, key, session.TokenId, string(payload)).Err(); err != nil {
		return pkgerrors.Wrap(err, "save session")
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl > 0 {
		// the hash lives as long as its newest token
		if err := s.cache.Expire(ctx, key, ttl).Err(); err != nil {
			return pkgerrors.Wrap(err, "expire session")
		}
	}
	return nil
}

// Get returns nil without error when the session is unknown or revoked
func (s *SessionStore) Get(ctx context.Context, userId, tokenId string) (*Session, error) {
	raw, err := s.cache.HGet(ctx, s.key(userId), tokenId).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load session")
	}
	var session Session
	if err := sonic.UnmarshalString(raw, &session); err != nil {
		return nil, pkgerrors.Wrap(err, "unmarshal session")
	}
	return &session, nil
}

func (s *SessionStore) Revoke(ctx context.Context, userId, tokenId string) error {
	return pkgerrors.Wrap(s.cache.HDel(ctx, s.key(userId), tokenId).Err(), "revoke session")
}

// RevokeAll drops every session of the user
func (s *SessionStore) RevokeAll(ctx context.Context, userId string) error {
	return pkgerrors.Wrap(s.cache.Del(ctx, s.key(userId)).Err(), "revoke sessions")
}
