package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	// DefaultTTL время жизни записей каталога
	DefaultTTL = 5 * time.Minute

	keyPrefix = "salon:catalog:"
)

// Cache read-through кэш каталога в Redis.
// Ошибки Redis не ломают чтение: запрос уходит в Source.
// Профили клиентов не кэшируются.
type Cache struct {
	source Source
	client redis.UniversalClient
	ttl    time.Duration
	logger Logger
}

// New создает кэш. ttl <= 0 заменяется на DefaultTTL
func New(source Source, client redis.UniversalClient, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) GetServices(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	key := fmt.Sprintf("%sservices:active=%t", keyPrefix, activeOnly)
	return readThrough(ctx, c, key, func() ([]*domain.Service, error) {
		return c.source.GetServices(ctx, activeOnly)
	})
}

func (c *Cache) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	key := keyPrefix + "service:" + id.String()
	return readThrough(ctx, c, key, func() (*domain.Service, error) {
		return c.source.GetService(ctx, id)
	})
}

func (c *Cache) GetProfessionals(ctx context.Context, activeOnly bool) ([]*domain.Professional, error) {
	key := fmt.Sprintf("%sprofessionals:active=%t", keyPrefix, activeOnly)
	return readThrough(ctx, c, key, func() ([]*domain.Professional, error) {
		return c.source.GetProfessionals(ctx, activeOnly)
	})
}

func (c *Cache) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	key := keyPrefix + "professional:" + id.String()
	return readThrough(ctx, c, key, func() (*domain.Professional, error) {
		return c.source.GetProfessional(ctx, id)
	})
}

// GetCustomerProfiles всегда читает из Source
func (c *Cache) GetCustomerProfiles(ctx context.Context, ids []uuid.UUID) ([]*domain.CustomerProfile, error) {
	return c.source.GetCustomerProfiles(ctx, ids)
}

// CountCustomers всегда читает из Source
func (c *Cache) CountCustomers(ctx context.Context) (int, error) {
	return c.source.CountCustomers(ctx)
}

// Invalidate удаляет все записи каталога
func (c *Cache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("catalog.cache: Invalidate - scan keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("catalog.cache: Invalidate - delete keys: %w", err)
	}

	c.logger.Info("CatalogCache: invalidated %d keys", len(keys))
	return nil
}

// readThrough читает значение из Redis, при промахе загружает из источника и сохраняет
// Ошибки источника не кэшируются
func readThrough[T any](ctx context.Context, c *Cache, key string, load func() (T, error)) (T, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("CatalogCache: corrupted entry %s, reloading", key)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("CatalogCache: get %s failed: %v", key, err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("CatalogCache: marshal %s failed: %v", key, err)
		return value, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("CatalogCache: set %s failed: %v", key, err)
	}

	return value, nil
}
