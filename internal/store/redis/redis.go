// Package redis keeps conversation history in Redis lists, one per user.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "conversation:"

// Store appends JSON records with RPUSH. A positive TTL is refreshed on every
// append, so idle users expire as a whole.
type Store struct {
	rdb *goredis.Client
	ttl time.Duration
}

// Open parses url (redis://host:port/db) and pings the server.
func Open(ctx context.Context, url string, ttl time.Duration) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return New(rdb, ttl), nil
}

func New(rdb *goredis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(userID string) string { return keyPrefix + userID }

func (s *Store) Append(ctx context.Context, rec model.ConversationRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	k := key(rec.UserID)
	_, err = s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.RPush(ctx, k, data)
		if s.ttl > 0 {
			p.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "append record")
	}
	return nil
}

func (s *Store) HistoryFor(ctx context.Context, userID string, limit int) ([]model.ConversationRecord, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := s.rdb.LRange(ctx, key(userID), start, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "load history")
	}
	out := make([]model.ConversationRecord, 0, len(raw))
	for _, r := range raw {
		var rec model.ConversationRecord
		if err := json.Unmarshal([]byte(r), &rec); err != nil {
			return nil, errors.Wrap(err, "decode record")
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Purge(ctx context.Context, userID string) (int, error) {
	k := key(userID)
	var n *goredis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		n = p.LLen(ctx, k)
		p.Del(ctx, k)
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "purge history")
	}
	return int(n.Val()), nil
}

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.rdb.Close() }
