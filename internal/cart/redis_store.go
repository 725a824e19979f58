package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"cart-service/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore keeps carts in Redis hashes. Each read-modify-write runs under
// WATCH/MULTI so concurrent adds and removes never lose an update.
type RedisStore struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
	logger     *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, maxRetries int, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RedisStore{
		client:     client,
		ttl:        ttl,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (s *RedisStore) AddItem(ctx context.Context, key string, item models.Item) (models.CartLineItem, error) {
	var line models.CartLineItem

	err := s.transact(ctx, key, func(tx *redis.Tx) error {
		current, found, err := s.readLine(ctx, tx, key, item.ID)
		if err != nil {
			return err
		}
		if found {
			line = current
			line.Quantity++
		} else {
			line = models.NewCartLineItem(item)
		}

		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptLineItem, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field(item.ID), data)
			pipe.Expire(ctx, key, s.ttl)
			return nil
		})
		return err
	})
	if err != nil {
		return models.CartLineItem{}, err
	}

	return line, nil
}

func (s *RedisStore) RemoveItem(ctx context.Context, key string, itemID int64) (models.CartLineItem, error) {
	var line models.CartLineItem

	err := s.transact(ctx, key, func(tx *redis.Tx) error {
		current, found, err := s.readLine(ctx, tx, key, itemID)
		if err != nil {
			return err
		}
		if !found {
			return ErrLineItemNotFound
		}
		line = current

		if line.Quantity > 1 {
			line.Quantity--
			data, err := json.Marshal(line)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCorruptLineItem, err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, key, field(itemID), data)
				return nil
			})
			return err
		}

		line.Quantity = 0
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, key, field(itemID))
			return nil
		})
		return err
	})
	if err != nil {
		return models.CartLineItem{}, err
	}

	return line, nil
}

func (s *RedisStore) Items(ctx context.Context, key string) ([]models.CartLineItem, error) {
	raw, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	lines := make([]models.CartLineItem, 0, len(raw))
	for f, value := range raw {
		line, err := decodeLine([]byte(value))
		if err != nil {
			s.logger.Warn("Undecodable cart line",
				zap.String("cart_key", key),
				zap.String("field", f),
				zap.Error(err),
			)
			return nil, err
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })

	return lines, nil
}

// transact runs fn under WATCH key and retries when EXEC was aborted
func (s *RedisStore) transact(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, fn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.logger.Debug("Cart transaction aborted, retrying",
			zap.String("cart_key", key),
			zap.Int("attempt", attempt),
		)
	}

	s.logger.Warn("Cart transaction retries exhausted",
		zap.String("cart_key", key),
		zap.Int("max_retries", s.maxRetries),
	)
	return ErrCartConflict
}

func (s *RedisStore) readLine(ctx context.Context, tx *redis.Tx, key string, itemID int64) (models.CartLineItem, bool, error) {
	raw, err := tx.HGet(ctx, key, field(itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.CartLineItem{}, false, nil
	}
	if err != nil {
		return models.CartLineItem{}, false, fmt.Errorf("redis hget: %w", err)
	}

	line, err := decodeLine(raw)
	if err != nil {
		return models.CartLineItem{}, false, err
	}
	return line, true, nil
}

// decodeLine treats a line stored without a quantity as a single unit
func decodeLine(raw []byte) (models.CartLineItem, error) {
	line := models.CartLineItem{Quantity: 1}
	if err := json.Unmarshal(raw, &line); err != nil {
		return models.CartLineItem{}, fmt.Errorf("%w: %v", ErrCorruptLineItem, err)
	}
	if line.Quantity < 1 {
		return models.CartLineItem{}, fmt.Errorf("%w: quantity %d", ErrCorruptLineItem, line.Quantity)
	}
	return line, nil
}
