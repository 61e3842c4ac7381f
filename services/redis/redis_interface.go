package redis

import (
	redis_utils "LoveForTennis/services/redis/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient accepts either a redis:// URL or a plain host:port address
func NewRedisClient(addr string, db int) (*RedisClient, error) {
	var client *redis.Client
	if strings.Contains(addr, "://") {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{client: client}, nil
}

// SaveResetToken stores the email a password reset token was issued for
// Key format: "reset:{tokenHash}"
func (rc *RedisClient) SaveResetToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error {
	key := redis_utils.FormatResetTokenKey(tokenHash)
	if err := rc.client.Set(ctx, key, email, ttl).Err(); err != nil {
		return fmt.Errorf("error saving reset token: %w", err)
	}
	return nil
}

// TakeResetToken reads and deletes a reset token atomically (GETDEL)
func (rc *RedisClient) TakeResetToken(ctx context.Context, tokenHash string) (string, bool, error) {
	key := redis_utils.FormatResetTokenKey(tokenHash)
	email, err := rc.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading reset token: %w", err)
	}
	return email, true, nil
}

// RegisterLoginFailure increments the failed login counter of an email.
// The first failure opens a window of length window.
// Key format: "login_failures:{email}"
func (rc *RedisClient) RegisterLoginFailure(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := redis_utils.FormatLoginFailuresKey(email)
	pipe := rc.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("error counting login failure: %w", err)
	}
	return incr.Val(), nil
}

// LoginFailures returns the failures counted in the current window
func (rc *RedisClient) LoginFailures(ctx context.Context, email string) (int64, error) {
	key := redis_utils.FormatLoginFailuresKey(email)
	n, err := rc.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error reading login failures: %w", err)
	}
	return n, nil
}

// ClearLoginFailures resets the counter after a successful login
func (rc *RedisClient) ClearLoginFailures(ctx context.Context, email string) error {
	return rc.CleanupKeys(ctx, []string{redis_utils.FormatLoginFailuresKey(email)})
}
