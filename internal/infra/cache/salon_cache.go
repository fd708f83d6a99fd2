package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const keyPrefix = "salon:"

// SalonCache is a read-through cache in front of a salon.Repository. Single
// salon reads are served from the cache; writes go to the store and drop the
// cached copy. A cache failure falls back to the store.
//
// A fill that raced with an invalidation is skipped, so a salon read before
// a write is never cached after it. Use cases that read a salon in order to
// write it, or to snapshot its prices, go through Primary instead.
type SalonCache struct {
	next  salon.Repository
	cache Cache
	ttl   time.Duration
	log   *zap.Logger

	// mu orders fills against invalidations; gens counts invalidations per id.
	mu   sync.Mutex
	gens map[string]uint64
}

func NewSalonCache(next salon.Repository, cache Cache, ttl time.Duration, log *zap.Logger) *SalonCache {
	return &SalonCache{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
		gens:  make(map[string]uint64),
	}
}

func key(id string) string {
	return keyPrefix + id
}

func (c *SalonCache) List(ctx context.Context, q salon.Query) ([]models.Salon, int64, error) {
	return c.next.List(ctx, q)
}

func (c *SalonCache) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	raw, err := c.cache.Get(ctx, key(id))
	switch {
	case err == nil:
		var s models.Salon
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s, nil
		}
		c.log.Warn("discarding undecodable cached salon", zap.String("salon_id", id))
	case !errors.Is(err, ErrMiss):
		c.log.Warn("salon cache read failed", zap.String("salon_id", id), zap.Error(err))
	}

	gen := c.generation(id)

	s, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.fill(ctx, s, gen)
	return s, nil
}

func (c *SalonCache) GetByIDs(ctx context.Context, ids []string) (map[string]models.Salon, error) {
	return c.next.GetByIDs(ctx, ids)
}

func (c *SalonCache) Create(ctx context.Context, s *models.Salon) error {
	return c.next.Create(ctx, s)
}

func (c *SalonCache) Update(ctx context.Context, s *models.Salon) error {
	if err := c.next.Update(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx, s.ID)
	return nil
}

func (c *SalonCache) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// Primary returns a repository that reads from the store and still
// invalidates the cache on writes.
func (c *SalonCache) Primary() salon.Repository {
	return primary{c}
}

func (c *SalonCache) generation(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id]
}

func (c *SalonCache) fill(ctx context.Context, s *models.Salon, gen uint64) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[s.ID] != gen {
		return
	}
	if err := c.cache.Set(ctx, key(s.ID), b, c.ttl); err != nil {
		c.log.Warn("salon cache write failed", zap.String("salon_id", s.ID), zap.Error(err))
	}
}

func (c *SalonCache) invalidate(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[id]++
	if err := c.cache.Delete(ctx, key(id)); err != nil {
		c.log.Warn("salon cache invalidation failed", zap.String("salon_id", id), zap.Error(err))
	}
}

type primary struct{ *SalonCache }

func (p primary) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	return p.next.GetByID(ctx, id)
}

// Compile-time check
var (
	_ salon.Repository = (*SalonCache)(nil)
	_ salon.Repository = primary{}
	_ Cache            = (*RedisCache)(nil)
)
