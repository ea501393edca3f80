package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/feedbackwall/feedback-service/pkg/logger"
	"github.com/feedbackwall/feedback-service/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

const defaultListKey = "feedback:list"

// RedisCachedRepo wraps a Repository with a read-through Redis cache of the
// full List result. Cached lists live under "<key>:<generation>" and every
// successful Create bumps the generation counter at "<key>:gen", so a list
// read from the store before a Create can only land under a retired
// generation. Redis failures are logged and fall through to the wrapped
// repository.
type RedisCachedRepo struct {
	next   Repository
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCachedRepo returns next wrapped with a cache stored under key.
// An empty key uses "feedback:list".
func NewRedisCachedRepo(next Repository, client *redis.Client, key string, ttl time.Duration) *RedisCachedRepo {
	if key == "" {
		key = defaultListKey
	}
	return &RedisCachedRepo{next: next, client: client, key: key, ttl: ttl}
}

func (r *RedisCachedRepo) genKey() string { return r.key + ":gen" }

func (r *RedisCachedRepo) listKey(gen int64) string {
	return r.key + ":" + strconv.FormatInt(gen, 10)
}

func (r *RedisCachedRepo) Create(ctx context.Context, rec *feedback.Record) error {
	if err := r.next.Create(ctx, rec); err != nil {
		return err
	}
	if err := r.client.Incr(ctx, r.genKey()).Err(); err != nil {
		logger.Warnf("feedback cache: invalidate %s: %v", r.key, err)
	}
	return nil
}

// generation must be read before the store so that any Create finishing
// after it is visible as a newer generation.
func (r *RedisCachedRepo) generation(ctx context.Context) (int64, bool) {
	gen, err := r.client.Get(ctx, r.genKey()).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		logger.Warnf("feedback cache: get %s: %v", r.genKey(), err)
		return 0, false
	}
}

func (r *RedisCachedRepo) List(ctx context.Context) ([]*feedback.Record, error) {
	gen, ok := r.generation(ctx)
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return r.next.List(ctx)
	}
	key := r.listKey(gen)

	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []*feedback.Record
		if jerr := json.Unmarshal(b, &out); jerr == nil && out != nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return out, nil
		}
		logger.Warnf("feedback cache: discarding unreadable entry %s", key)
	case errors.Is(err, redis.Nil):
	default:
		logger.Warnf("feedback cache: get %s: %v", key, err)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	list, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(list); err == nil {
		if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
			logger.Warnf("feedback cache: set %s: %v", key, err)
		}
	}
	return list, nil
}

// Ping reports the wrapped repository's health; the cache is optional.
func (r *RedisCachedRepo) Ping(ctx context.Context) error {
	if p, ok := r.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
