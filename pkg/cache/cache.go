package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss возвращается, когда ключа нет в кэше
var ErrMiss = errors.New("cache: miss")

// Cache key-value хранилище с TTL. Значения сериализуются реализацией
type Cache interface {
	// Get читает значение по ключу в dest. Возвращает ErrMiss, если ключа нет
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Nop кэш, который ничего не хранит. Используется, когда redis выключен
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) error {
	return ErrMiss
}

func (Nop) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (Nop) Delete(context.Context, ...string) error {
	return nil
}
