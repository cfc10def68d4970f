package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/recruitment-portal/internal/domain"
)

const redisKeyPrefix = "portal:session:"

// Field names inside the session hash. They mirror the three entries the
// browser front-end used to keep in tab storage.
const (
	fieldToken = "token"
	fieldRole  = "role"
	fieldID    = "id"
)

// RedisStore is the Redis backed Store, for running more than one portal
// instance behind a load balancer.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a store on top of an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put writes all three fields in one transaction and refreshes the TTL.
func (s *RedisStore) Put(ctx context.Context, sid string, sess Session) error {
	key := redisKeyPrefix + sid
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		fieldToken, sess.Token,
		fieldRole, string(sess.Role),
		fieldID, strconv.FormatInt(sess.PersonID, 10),
	)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Get reads the hash back. A hash missing any of the three fields, or holding
// values that fail to parse, counts as no session at all.
func (s *RedisStore) Get(ctx context.Context, sid string) (Session, error) {
	values, err := s.client.HGetAll(ctx, redisKeyPrefix+sid).Result()
	if err != nil {
		return Session{}, err
	}

	role, _ := domain.ParseRole(values[fieldRole])
	personID, _ := strconv.ParseInt(values[fieldID], 10, 64)
	sess := Session{
		Token:    values[fieldToken],
		Role:     role,
		PersonID: personID,
	}
	return sess.Normalize(), nil
}

// Clear deletes the whole hash.
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, redisKeyPrefix+sid).Err()
}
