// Package redissession persists bearer-token sessions in Redis. Each login
// writes one key per session id with the token TTL, so logout is a single
// delete and the key expires on its own when the token would anyway.
package redissession

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth:session:"

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(sid string) string {
	return keyPrefix + sid
}

func (s *Store) Put(ctx context.Context, sid, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(sid), userID, ttl).Err()
}

// Get returns the user id bound to sid. ok is false when the session does not
// exist or has expired.
func (s *Store) Get(ctx context.Context, sid string) (userID string, ok bool, err error) {
	v, err := s.rdb.Get(ctx, key(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}
