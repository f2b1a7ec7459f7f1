package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

type weatherCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewWeatherCache creates a Redis-backed cache of weather readings. It
// returns nil when client is nil or ttl is not positive.
func NewWeatherCache(client *redislib.Client, ttl time.Duration) repository.WeatherCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &weatherCache{
		client: client,
		prefix: "weather:",
		ttl:    ttl,
	}
}

func (c *weatherCache) Get(ctx context.Context, location string) (*domain.WeatherInfo, error) {
	result, err := c.client.Get(ctx, c.key(location)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrWeatherMiss
		}
		return nil, err
	}

	var info domain.WeatherInfo
	if err := json.Unmarshal([]byte(result), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *weatherCache) Set(ctx context.Context, location string, info domain.WeatherInfo) error {
	if strings.TrimSpace(location) == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(location), payload, c.ttl).Err()
}

func (c *weatherCache) key(location string) string {
	return fmt.Sprintf("%s%s", c.prefix, normalizeLocation(location))
}

func normalizeLocation(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}
