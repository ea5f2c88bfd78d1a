package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/logger"
)

// Cache stores rendered SVG documents by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, svg string) error
}

// CacheKey identifies a rendering of text with style.
func CacheKey(style config.Style, text string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(string(style.ConvertReading)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(style.NoText)))
	return "pitchgraph:svg:" + hex.EncodeToString(h.Sum(nil))
}

type redisCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisCache connects to addr and checks the connection.
func NewRedisCache(addr string, ttl time.Duration, log *logger.Logger) (Cache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCache{
		log: log.With("service", "RedisCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, svg string) error {
	return c.rdb.Set(ctx, key, svg, c.ttl).Err()
}
