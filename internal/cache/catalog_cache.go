package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"vidshare/internal/model"
)

const listingKey = "catalog:listing"

// CatalogCache keeps the home-page listing in Redis for a short TTL. Uploads
// invalidate it so new videos show up immediately.
type CatalogCache struct {
	client     *redisv9.Client
	listingTTL time.Duration
}

func NewCatalogCache(client *redisv9.Client, listingTTL time.Duration) *CatalogCache {
	if listingTTL <= 0 {
		listingTTL = 60 * time.Second
	}
	return &CatalogCache{
		client:     client,
		listingTTL: listingTTL,
	}
}

func (c *CatalogCache) GetListing(ctx context.Context) ([]model.Video, bool, error) {
	raw, err := c.client.Get(ctx, listingKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get listing failed: %w", err)
	}

	var videos []model.Video
	if err := json.Unmarshal([]byte(raw), &videos); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached listing failed: %w", err)
	}
	return videos, true, nil
}

func (c *CatalogCache) SetListing(ctx context.Context, videos []model.Video) error {
	payload, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("marshal listing cache failed: %w", err)
	}
	if err := c.client.Set(ctx, listingKey, payload, c.listingTTL).Err(); err != nil {
		return fmt.Errorf("redis set listing failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		return fmt.Errorf("redis delete listing failed: %w", err)
	}
	return nil
}
