package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories are written against.
// Any go-redis client, including one pointed at miniredis, satisfies it.
type Client interface {
	redis.UniversalClient
}
