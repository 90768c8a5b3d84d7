// Package redis builds the go-redis clients used by the level store.
package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
)

// Options tunes the connection pool. Zero values use the go-redis defaults.
type Options struct {
	PoolSize        int           `yaml:"pool_size" json:"pool_size,omitempty"`
	MinIdleConns    int           `yaml:"min_idle_conns" json:"min_idle_conns,omitempty"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" json:"conn_max_idle_time,omitempty"`
	MaxRetries      int           `yaml:"max_retries" json:"max_retries,omitempty"`
	DB              int           `yaml:"db" json:"db,omitempty"`
	UseTLS          bool          `yaml:"use_tls" json:"use_tls,omitempty"`
}

// Validate checks the pool settings
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}

	vb := errors.NewValidationBuilder()
	if o.PoolSize < 0 {
		vb.Field("PoolSize", "must not be negative")
	}
	if o.MinIdleConns < 0 {
		vb.Field("MinIdleConns", "must not be negative")
	}
	if o.MaxRetries < -1 {
		vb.Field("MaxRetries", "must be -1 (disabled) or more")
	}
	if o.DB < 0 {
		vb.Field("DB", "must not be negative")
	}
	return vb.Build()
}

// NewClient creates a client for a single redis instance. The client
// connects lazily; use Ping to fail fast at startup.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid redis options")
	}
	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{
		Addr:            endpoint,
		DB:              opts.DB,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdleConns,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
	}
	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return redis.NewClient(redisOpts), nil
}

// Ping checks that the server answers
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
	}
	return nil
}
