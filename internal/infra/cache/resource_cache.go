package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CachedResourceReader fronts the resource catalog with Redis. The engine
// reads a resource once per createBooking, so a short TTL keeps rate changes
// visible while absorbing most of the read traffic. Any cache failure degrades
// to a database read.
type CachedResourceReader struct {
	reads  shared.CommandReads
	client *redis.Client
	ttl    time.Duration
}

func NewCachedResourceReader(reads shared.CommandReads, client *redis.Client, ttl time.Duration) *CachedResourceReader {
	return &CachedResourceReader{
		reads:  reads,
		client: client,
		ttl:    ttl,
	}
}

func resourceKey(id uuid.UUID) string {
	return fmt.Sprintf("resource:%s:details", id)
}

func (c *CachedResourceReader) ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	if c.client != nil {
		if snap, ok := c.get(ctx, id); ok {
			return snap, nil
		}
	}

	snap, err := c.reads.ResourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		c.set(ctx, id, snap)
	}
	return snap, nil
}

func (c *CachedResourceReader) get(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, bool) {
	data, err := c.client.Get(ctx, resourceKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Debug("resource cache read failed", "resource_id", id.String(), "error", err.Error())
		}
		return nil, false
	}

	var snap shared.ResourceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *CachedResourceReader) set(ctx context.Context, id uuid.UUID, snap *shared.ResourceSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, resourceKey(id), data, c.ttl).Err(); err != nil {
		slog.Debug("resource cache write failed", "resource_id", id.String(), "error", err.Error())
	}
}
