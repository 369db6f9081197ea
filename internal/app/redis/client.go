package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"repairportal/internal/app/config"
)

const jwtPrefix = "jwt."

// Client — обёртка над redis для blacklist'а JWT токенов
type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot ping redis: %w", err)
	}

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

// WriteJWTToBlacklist помещает токен в blacklist до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, ttl time.Duration) error {
	return c.client.Set(ctx, jwtPrefix+jwtStr, true, ttl).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен найден в blacklist'е
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, jwtPrefix+jwtStr).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}
