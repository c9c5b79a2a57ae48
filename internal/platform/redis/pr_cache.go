package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/logger"
)

const keyPrefix = "wodlog:pr"

// generationTTL bounds how long an idle pair's generation counter lives. A
// counter that expires restarts at zero, which only matters to a lookup that
// has been running for longer than this.
const generationTTL = 24 * time.Hour

// entry is what the cache holds for one athlete and WOD.
type entry struct {
	value string
	found bool
	gen   int64
}

// kv is the subset of the Redis API the cache uses. Every athlete and WOD
// pair has a value key and a generation key; the generation changes on each
// invalidation.
type kv interface {
	// Load reads the value and the current generation.
	Load(ctx context.Context, key, genKey string) (entry, error)
	// StoreIfGen writes value only while the generation still equals gen.
	StoreIfGen(ctx context.Context, key, genKey, value string, gen int64, ttl time.Duration) (bool, error)
	// Bump advances the generation and drops the value in one step.
	Bump(ctx context.Context, key, genKey string, genTTL time.Duration) error
	Del(ctx context.Context, key string) error
}

// storeIfGen sets KEYS[1] to ARGV[2] when KEYS[2] (missing counts as 0)
// equals ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none.
var storeIfGen = goredis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// clientKV adapts *goredis.Client to kv.
type clientKV struct {
	client *goredis.Client
}

func (c clientKV) Load(ctx context.Context, key, genKey string) (entry, error) {
	vals, err := c.client.MGet(ctx, key, genKey).Result()
	if err != nil {
		return entry{}, err
	}

	var e entry
	if v, ok := vals[0].(string); ok {
		e.value, e.found = v, true
	}
	if g, ok := vals[1].(string); ok {
		e.gen, err = strconv.ParseInt(g, 10, 64)
		if err != nil {
			return entry{}, fmt.Errorf("invalid generation %q: %w", g, err)
		}
	}
	return e, nil
}

func (c clientKV) StoreIfGen(ctx context.Context, key, genKey, value string, gen int64, ttl time.Duration) (bool, error) {
	stored, err := storeIfGen.Run(ctx, c.client, []string{key, genKey},
		strconv.FormatInt(gen, 10), value, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (c clientKV) Bump(ctx context.Context, key, genKey string, genTTL time.Duration) error {
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, genTTL)
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

func (c clientKV) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// PRCache stores the ID of each athlete's best result per WOD. Writes are
// conditional on the pair's generation, so a PR computed before a result
// was recorded or deleted is never cached after the invalidation.
type PRCache struct {
	kv     kv
	ttl    time.Duration
	logger *slog.Logger
}

// NewPRCache creates a cache on top of client. Entries expire after ttl.
func NewPRCache(client *goredis.Client, ttl time.Duration, logger *slog.Logger) *PRCache {
	return newPRCache(clientKV{client: client}, ttl, logger)
}

func newPRCache(store kv, ttl time.Duration, logger *slog.Logger) *PRCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &PRCache{
		kv:     store,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "pr_cache")),
	}
}

// Key returns the cache key for an athlete and WOD. The WOD ID goes first
// because it cannot contain ':', which keeps keys unambiguous for any
// athlete ID. The braces are a cluster hash tag: a pair's keys share a slot.
func Key(athleteID domain.AthleteID, wodID domain.WodID) string {
	return fmt.Sprintf("%s:{%s:%s}", keyPrefix, wodID.String(), athleteID.String())
}

// GenerationKey returns the key of the pair's generation counter.
func GenerationKey(athleteID domain.AthleteID, wodID domain.WodID) string {
	return Key(athleteID, wodID) + ":gen"
}

// Get returns the cached PR result ID and the pair's current generation. ok
// is false on a miss; the generation is valid either way and is what Set
// expects.
func (c *PRCache) Get(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
) (id domain.ResultID, gen int64, ok bool, err error) {
	key := Key(athleteID, wodID)

	e, err := c.kv.Load(ctx, key, GenerationKey(athleteID, wodID))
	if err != nil {
		return domain.ResultID{}, 0, false, fmt.Errorf("pr cache get %s: %w", key, err)
	}
	if !e.found {
		return domain.ResultID{}, e.gen, false, nil
	}

	id, err = domain.NewResultID(e.value)
	if err != nil {
		// Corrupt entry: drop it and report a miss.
		logger.FromContextOrDefault(ctx, c.logger).Warn("discarding invalid pr cache entry",
			slog.String("key", key))
		_ = c.kv.Del(ctx, key)
		return domain.ResultID{}, e.gen, false, nil
	}
	return id, e.gen, true, nil
}

// Set caches resultID as the PR for the athlete and WOD if the pair has not
// been invalidated since Get returned gen. It reports whether the entry was
// written.
func (c *PRCache) Set(
	ctx context.Context,
	athleteID domain.AthleteID,
	wodID domain.WodID,
	gen int64,
	resultID domain.ResultID,
) (bool, error) {
	key := Key(athleteID, wodID)
	stored, err := c.kv.StoreIfGen(ctx, key, GenerationKey(athleteID, wodID), resultID.String(), gen, c.ttl)
	if err != nil {
		return false, fmt.Errorf("pr cache set %s: %w", key, err)
	}
	return stored, nil
}

// Invalidate removes the cached PR for the athlete and WOD and advances its
// generation, so writes based on earlier lookups are refused.
func (c *PRCache) Invalidate(ctx context.Context, athleteID domain.AthleteID, wodID domain.WodID) error {
	key := Key(athleteID, wodID)
	if err := c.kv.Bump(ctx, key, GenerationKey(athleteID, wodID), max(generationTTL, 2*c.ttl)); err != nil {
		return fmt.Errorf("pr cache invalidate %s: %w", key, err)
	}
	logger.FromContextOrDefault(ctx, c.logger).Debug("pr cache entry invalidated", slog.String("key", key))
	return nil
}
