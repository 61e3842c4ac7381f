package redis

import (
	"context"
	"fmt"
	"log"
)

// InitRedis initializes the Redis connection and checks it answers
func InitRedis(addr string, db int) (*RedisClient, error) {
	rc, err := NewRedisClient(addr, db)
	if err != nil {
		return nil, err
	}

	if err := rc.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")
	return rc, nil
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %v", err)
	}
	return nil
}
