package repository

import (
	"context"
	"errors"
	"fmt"
	"studentportal/domain"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

var errStaleFill = errors.New("registration list changed since it was read")

// The Redis keys for the cached registration list and its generation counter
const (
	allRegistrationsCacheKey = "cache:all_registrations"
	allRegistrationsGenKey   = "cache:all_registrations:gen"
)

type registrationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRegistrationCache(rdb *redis.Client, ttl time.Duration) domain.RegistrationCache {
	return &registrationCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (rc *registrationCache) GetAll(ctx context.Context) ([]domain.Registration, bool, error) {
	data, err := rc.rdb.Get(ctx, allRegistrationsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", allRegistrationsCacheKey, err)
	}

	var registrations []domain.Registration
	if err := sonic.Unmarshal(data, &registrations); err != nil {
		return nil, false, fmt.Errorf("redis: decode %s: %w", allRegistrationsCacheKey, err)
	}
	if registrations == nil {
		registrations = []domain.Registration{}
	}
	return registrations, true, nil
}

func (rc *registrationCache) Generation(ctx context.Context) (int64, error) {
	gen, err := rc.rdb.Get(ctx, allRegistrationsGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: get %s: %w", allRegistrationsGenKey, err)
	}
	return gen, nil
}

// SetAll stores regs unless the generation moved past gen. A skipped fill is not an error.
func (rc *registrationCache) SetAll(ctx context.Context, gen int64, regs []domain.Registration) error {
	if regs == nil {
		regs = []domain.Registration{}
	}
	data, err := sonic.Marshal(regs)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", allRegistrationsCacheKey, err)
	}

	err = rc.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, allRegistrationsGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, allRegistrationsCacheKey, data, rc.ttl)
			return nil
		})
		return err
	}, allRegistrationsGenKey)

	if err != nil && !errors.Is(err, errStaleFill) && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("redis: set %s: %w", allRegistrationsCacheKey, err)
	}
	return nil
}

// Invalidate advances the generation before dropping the list.
func (rc *registrationCache) Invalidate(ctx context.Context) error {
	if err := rc.rdb.Incr(ctx, allRegistrationsGenKey).Err(); err != nil {
		return fmt.Errorf("redis: incr %s: %w", allRegistrationsGenKey, err)
	}
	if err := rc.rdb.Del(ctx, allRegistrationsCacheKey).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", allRegistrationsCacheKey, err)
	}
	return nil
}
