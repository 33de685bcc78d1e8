package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ProductCache is a read-through cache of single products in Redis.
// Cache failures are logged and treated as misses.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// Get returns the cached product, or nil on a miss.
func (c *ProductCache) Get(ctx context.Context, id int64) *model.Product {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Int64("product_id", id).Msg("product cache read failed")
		}
		return nil
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		c.logger.Warn().Err(err).Int64("product_id", id).Msg("product cache entry is corrupt")
		return nil
	}
	return &product
}

func (c *ProductCache) Set(ctx context.Context, product *model.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn().Err(err).Int64("product_id", product.ID).Msg("product cache encode failed")
		return
	}

	if err := c.client.Set(ctx, productKey(product.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("product_id", product.ID).Msg("product cache write failed")
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("product_id", id).Msg("product cache invalidate failed")
	}
}
