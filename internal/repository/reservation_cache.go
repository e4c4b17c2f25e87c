package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/room-reservation/internal/model"
)

// CachedReservationRepo puts a Redis read-through cache in front of another
// store.  The inner store stays the source of truth: Save writes through
// before touching the cache, and any Redis failure falls back to the inner
// store instead of failing the call.
type CachedReservationRepo struct {
	inner  ReservationStore
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    zerolog.Logger
}

// NewCachedReservationRepo wraps inner with a Redis cache.  A nil client
// disables caching and every call goes straight to inner.
func NewCachedReservationRepo(inner ReservationStore, rdb *redis.Client, prefix string, ttl time.Duration, log zerolog.Logger) *CachedReservationRepo {
	if prefix == "" {
		prefix = "reservation"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedReservationRepo{inner: inner, rdb: rdb, ttl: ttl, prefix: prefix, log: log}
}

func (r *CachedReservationRepo) key(id string) string { return r.prefix + ":" + id }

// Save writes through to the inner store and refreshes the cache entry.
func (r *CachedReservationRepo) Save(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	saved, err := r.inner.Save(ctx, res)
	if err != nil {
		return model.Reservation{}, err
	}
	if r.rdb == nil {
		return saved, nil
	}
	payload, err := json.Marshal(saved)
	if err != nil {
		return saved, nil
	}
	if err := r.rdb.Set(ctx, r.key(saved.ID()), payload, r.ttl).Err(); err != nil {
		// a stale entry must not survive a failed refresh
		_ = r.rdb.Del(ctx, r.key(saved.ID())).Err()
		r.log.Warn().Err(err).Str("reservation_id", saved.ID()).Msg("cache refresh failed")
	}
	return saved, nil
}

// FindByID serves from Redis when possible and populates it on a miss.
func (r *CachedReservationRepo) FindByID(ctx context.Context, id string) (model.Reservation, bool, error) {
	if r.rdb == nil {
		return r.inner.FindByID(ctx, id)
	}
	bs, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	switch {
	case err == nil:
		var res model.Reservation
		if jerr := json.Unmarshal(bs, &res); jerr == nil {
			return res, true, nil
		}
		r.log.Warn().Str("reservation_id", id).Msg("dropping undecodable cache entry")
		_ = r.rdb.Del(ctx, r.key(id)).Err()
	case !errors.Is(err, redis.Nil):
		r.log.Warn().Err(err).Str("reservation_id", id).Msg("cache read failed")
	}

	res, ok, err := r.inner.FindByID(ctx, id)
	if err != nil || !ok {
		return res, ok, err
	}
	if payload, jerr := json.Marshal(res); jerr == nil {
		_ = r.rdb.Set(ctx, r.key(id), payload, r.ttl).Err()
	}
	return res, true, nil
}

// FindAll always reads the inner store; the cache only holds single entries.
func (r *CachedReservationRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
	return r.inner.FindAll(ctx)
}
