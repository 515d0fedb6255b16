package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client so platform-level helpers can be added
// without leaking the driver type across the codebase.
type Client struct {
	*redis.Client
}

// Open connects to Redis and verifies the connection with a ping before
// handing the client out.
func Open(ctx context.Context, addr, password string, db int) (*Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{Client: c}, nil
}
