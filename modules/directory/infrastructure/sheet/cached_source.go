package sheet

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const cacheKeyPrefix = "hcdash:directory:sheet:"

// CachedSource keeps the raw text of another Source in Redis for ttl.
// Records are still parsed on every load. Redis failures fall through to
// the wrapped source.
type CachedSource struct {
	next   Source
	client redis.UniversalClient
	ttl    time.Duration
	log    *logrus.Entry
}

func NewCachedSource(next Source, client redis.UniversalClient, ttl time.Duration, log *logrus.Logger) *CachedSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedSource{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.WithField("component", "directory.sheet.cache"),
	}
}

func (s *CachedSource) Name() string {
	return s.next.Name()
}

func (s *CachedSource) key() string {
	return cacheKeyPrefix + s.next.Name()
}

func (s *CachedSource) Fetch(ctx context.Context) (string, error) {
	text, err := s.client.Get(ctx, s.key()).Result()
	switch {
	case err == nil:
		return text, nil
	case !errors.Is(err, redis.Nil):
		s.log.WithError(err).Warn("sheet cache read failed")
	}

	text, err = s.next.Fetch(ctx)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(), text, s.ttl).Err(); err != nil {
		s.log.WithError(err).Warn("sheet cache write failed")
	}
	return text, nil
}

// Invalidate drops the cached text so the next Fetch reaches the source.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}
