package levels

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
	"github.com/KirkDiggler/rpg-levelgen/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-levelgen/internal/redis"
)

const (
	// Key patterns: level:{id} and level:world:{world_seed}
	levelKeyPrefix   = "level:"
	worldIndexPrefix = "level:world:"

	// Error messages
	errLevelNil     = "level cannot be nil"
	errLevelIDEmpty = "level ID cannot be empty"
)

// RedisConfig contains configuration for the Redis level repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL expires stored levels and their world index; zero keeps them forever
	TTL time.Duration
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed level repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    cfg.TTL,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Level == nil {
		return nil, errors.InvalidArgument(errLevelNil)
	}
	if input.Level.ID == "" {
		return nil, errors.InvalidArgument(errLevelIDEmpty)
	}

	key := levelKeyPrefix + input.Level.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("level with ID %s already exists", input.Level.ID)
	}

	if input.Level.CreatedAt.IsZero() {
		input.Level.CreatedAt = r.clock.Now()
	}

	data, err := json.Marshal(input.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal level")
	}

	indexKey := worldKey(input.Level.WorldSeed)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	pipe.SAdd(ctx, indexKey, input.Level.ID)
	if r.ttl > 0 {
		pipe.Expire(ctx, indexKey, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store level")
	}

	return &CreateOutput{Level: input.Level}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLevelIDEmpty)
	}

	result, err := r.client.Get(ctx, levelKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("level with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get level")
	}

	var level entities.Level
	if err := json.Unmarshal([]byte(result), &level); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal level")
	}

	return &GetOutput{Level: &level}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errLevelIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, levelKeyPrefix+input.ID)
	pipe.SRem(ctx, worldKey(getOutput.Level.WorldSeed), input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete level")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByWorld(ctx context.Context, input ListByWorldInput) (*ListByWorldOutput, error) {
	indexKey := worldKey(input.WorldSeed)

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get levels from index %s", indexKey)
	}

	levels := make([]*entities.Level, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				// expired level, drop the stale index entry
				if remErr := r.client.SRem(ctx, indexKey, id).Err(); remErr != nil {
					slog.WarnContext(ctx, "failed to clean stale level index entry",
						"index_key", indexKey,
						"level_id", id,
						"error", remErr.Error())
				}
				continue
			}
			return nil, err
		}
		levels = append(levels, getOutput.Level)
	}

	sortLevels(levels)

	slog.DebugContext(ctx, "listed levels by world",
		"world_seed", input.WorldSeed,
		"count", len(levels))

	return &ListByWorldOutput{Levels: levels}, nil
}

func worldKey(seed int64) string {
	return fmt.Sprintf("%s%d", worldIndexPrefix, seed)
}

func sortLevels(levels []*entities.Level) {
	slices.SortFunc(levels, func(a, b *entities.Level) int {
		return cmp.Or(cmp.Compare(a.LevelIndex, b.LevelIndex), cmp.Compare(a.ID, b.ID))
	})
}
