// Package cache keeps person projections in Redis so repeated reads skip
// the left join. Entries are dropped whenever a person or their duties change.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stargate/internal/person/models"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/circuit"
)

const (
	personKeyPrefix = "person:name:"
	peopleKey       = "person:all"
	versionKey      = "person:version"
)

// NoVersion is returned by Version when the current version is unknown.
// Writes tagged with it are dropped.
const NoVersion int64 = -1

// Nop caches nothing. It is used when Redis is not configured.
type Nop struct{}

func (Nop) Version(context.Context) int64                                     { return NoVersion }
func (Nop) GetPerson(context.Context, string) (*models.PersonAstronaut, bool) { return nil, false }
func (Nop) SetPerson(context.Context, int64, *models.PersonAstronaut)         {}
func (Nop) GetPeople(context.Context) ([]models.PersonAstronaut, bool)        { return nil, false }
func (Nop) SetPeople(context.Context, int64, []models.PersonAstronaut)        {}
func (Nop) Invalidate(context.Context, ...string)                             {}

// Redis is a read-through projection cache. Redis failures are logged and
// treated as misses; they never fail a request. After repeated failures the
// breaker opens and reads and writes skip Redis until a probe succeeds.
// Invalidation is always attempted.
//
// Every invalidation bumps a version counter. Callers read Version before
// loading from the store and pass it to SetPerson/SetPeople; a write whose
// version is no longer current is dropped, so a slow fill cannot overwrite
// an invalidation that landed after its store read.
type Redis struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	breaker *circuit.Breaker
}

// Option configures a Redis cache.
type Option func(*Redis)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Redis) {
		c.logger = logger
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Redis) {
		if b != nil {
			c.breaker = b
		}
	}
}

// NewRedis builds a cache over client. A non-positive ttl falls back to one minute.
func NewRedis(client *redis.Client, ttl time.Duration, opts ...Option) *Redis {
	if ttl <= 0 {
		ttl = time.Minute
	}
	c := &Redis{
		client:  client,
		ttl:     ttl,
		logger:  slog.Default(),
		breaker: circuit.New("person-cache", circuit.WithCooldown(10*time.Second)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Redis) GetPerson(ctx context.Context, name string) (*models.PersonAstronaut, bool) {
	var rec record
	if !c.get(ctx, personKeyPrefix+name, &rec) {
		return nil, false
	}
	p := rec.toModel()
	return &p, true
}

func (c *Redis) SetPerson(ctx context.Context, version int64, p *models.PersonAstronaut) {
	if p == nil {
		return
	}
	c.set(ctx, version, personKeyPrefix+p.Name, fromModel(*p))
}

func (c *Redis) GetPeople(ctx context.Context) ([]models.PersonAstronaut, bool) {
	var recs []record
	if !c.get(ctx, peopleKey, &recs) {
		return nil, false
	}
	out := make([]models.PersonAstronaut, len(recs))
	for i, rec := range recs {
		out[i] = rec.toModel()
	}
	return out, true
}

func (c *Redis) SetPeople(ctx context.Context, version int64, people []models.PersonAstronaut) {
	recs := make([]record, len(people))
	for i, p := range people {
		recs[i] = fromModel(p)
	}
	c.set(ctx, version, peopleKey, recs)
}

// Version returns the current invalidation version, or NoVersion when Redis
// cannot be read.
func (c *Redis) Version(ctx context.Context) int64 {
	if !c.breaker.Allow() {
		return NoVersion
	}
	v, err := c.readVersion(ctx, c.client)
	if err != nil {
		c.recordFailure(ctx)
		c.logger.WarnContext(ctx, "person cache version read failed", "error", err)
		return NoVersion
	}
	c.recordSuccess(ctx)
	return v
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (c *Redis) readVersion(ctx context.Context, r getter) (int64, error) {
	v, err := r.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Invalidate bumps the version and drops the list entry and the entries for
// names in one transaction.
func (c *Redis) Invalidate(ctx context.Context, names ...string) {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, versionKey)
	pipe.Del(ctx, peopleKey)
	for _, name := range names {
		if name != "" {
			pipe.Del(ctx, personKeyPrefix+name)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.recordFailure(ctx)
		c.logger.WarnContext(ctx, "person cache invalidation failed",
			"error", err,
			"names", names,
		)
		return
	}
	c.recordSuccess(ctx)
}

func (c *Redis) get(ctx context.Context, key string, dst any) bool {
	if !c.breaker.Allow() {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.recordSuccess(ctx)
		return false
	}
	if err != nil {
		c.recordFailure(ctx)
		c.logger.WarnContext(ctx, "person cache read failed", "key", key, "error", err)
		return false
	}
	c.recordSuccess(ctx)
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.WarnContext(ctx, "person cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

var errStaleVersion = errors.New("stale cache version")

// set writes key only while the version still equals version. WATCH aborts
// the write if an invalidation commits between the check and the SET.
func (c *Redis) set(ctx context.Context, version int64, key string, v any) {
	if version == NoVersion {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "person cache encode failed", "key", key, "error", err)
		return
	}
	if !c.breaker.Allow() {
		return
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.readVersion(ctx, tx)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	switch {
	case err == nil:
		c.recordSuccess(ctx)
	case errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		c.recordSuccess(ctx)
		c.logger.DebugContext(ctx, "person cache write skipped, invalidated meanwhile", "key", key)
	default:
		c.recordFailure(ctx)
		c.logger.WarnContext(ctx, "person cache write failed", "key", key, "error", err)
	}
}

func (c *Redis) recordFailure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "person cache circuit opened, bypassing redis")
	}
}

func (c *Redis) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "person cache circuit closed")
	}
}

// record is the cached JSON shape of a projection.
type record struct {
	PersonID         int64      `json:"person_id"`
	Name             string     `json:"name"`
	CurrentRank      string     `json:"current_rank,omitempty"`
	CurrentDutyTitle string     `json:"current_duty_title,omitempty"`
	CareerStartDate  *time.Time `json:"career_start_date,omitempty"`
	CareerEndDate    *time.Time `json:"career_end_date,omitempty"`
}

func fromModel(p models.PersonAstronaut) record {
	return record{
		PersonID:         int64(p.PersonID),
		Name:             p.Name,
		CurrentRank:      p.CurrentRank,
		CurrentDutyTitle: p.CurrentDutyTitle,
		CareerStartDate:  p.CareerStartDate,
		CareerEndDate:    p.CareerEndDate,
	}
}

func (r record) toModel() models.PersonAstronaut {
	return models.PersonAstronaut{
		PersonID:         id.PersonID(r.PersonID),
		Name:             r.Name,
		CurrentRank:      r.CurrentRank,
		CurrentDutyTitle: r.CurrentDutyTitle,
		CareerStartDate:  r.CareerStartDate,
		CareerEndDate:    r.CareerEndDate,
	}
}
