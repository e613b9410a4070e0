package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Cache Redis-кеш наборов слотов на дату
// Ключ - (scope, date), значение - JSON со всеми слотами дня.
// Кеш строго вспомогательный: любая ошибка Redis трактуется вызывающим
// кодом как промах, источником истины остается PostgreSQL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кеш поверх существующего Redis-клиента
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированный набор слотов для (scope, date)
func (c *Cache) Get(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.Slot, error) {
	raw, err := c.client.Get(ctx, c.key(scope, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: Get: %v", ErrUnavailable, err)
	}

	var slots []*domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}

	return slots, nil
}

// Set сохраняет набор слотов для (scope, date) с настроенным TTL
func (c *Cache) Set(ctx context.Context, scope domain.Scope, date time.Time, slots []*domain.Slot) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, c.key(scope, date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrUnavailable, err)
	}

	return nil
}

// Invalidate удаляет закешированный набор после мутации любого слота дня
func (c *Cache) Invalidate(ctx context.Context, scope domain.Scope, date time.Time) error {
	if err := c.client.Del(ctx, c.key(scope, date)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Cache) key(scope domain.Scope, date time.Time) string {
	return fmt.Sprintf("slots:%s:%s", scope, date.Format(domain.DateFormat))
}
