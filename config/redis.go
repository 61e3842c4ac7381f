package config

import (
	"LoveForTennis/services/redis"
	"log"
)

// Connect to Redis
func Connect_redis(cfg App) (*redis.RedisClient, error) {
	log.Println("Connecting to Redis...")
	redisClient, err := redis.InitRedis(cfg.RedisURL, 0)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
