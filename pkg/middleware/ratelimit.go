package middleware

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/jacksonlee411/hcdash/pkg/httpapi"
)

const rateLimitPrefix = "hcdash:ratelimit"

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	// TrustForwardHeader keys clients by X-Forwarded-For / X-Real-IP.
	TrustForwardHeader bool
}

func NewMemoryStore() limiter.Store {
	return memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          rateLimitPrefix,
		CleanUpInterval: time.Minute,
	})
}

// NewRedisStore connects to redisURL (a redis:// URL or host:port) and checks
// the connection before returning.
func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opts)
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   rateLimitPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "create redis rate limit store")
	}
	return store, nil
}

// RateLimit rejects clients over the configured rate with a JSON 429.
func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	period := cfg.Period
	if period <= 0 {
		period = time.Second
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	var opts []limiter.Option
	if cfg.TrustForwardHeader {
		opts = append(opts, limiter.WithTrustForwardHeader(true))
	}
	instance := limiter.New(store, limiter.Rate{Period: period, Limit: int64(cfg.RequestsPerPeriod)}, opts...)

	mw := stdlibmw.NewMiddleware(instance,
		stdlibmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteRequestError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
		}),
		stdlibmw.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			_ = httpapi.WriteRequestError(w, r, http.StatusInternalServerError, "RATE_LIMIT_ERROR", "rate limiter unavailable", nil)
		}),
	)
	return mw.Handler
}
