package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// KV adapta un cliente Redis al contrato del índice derivado. El cliente se
// construye acá y se inyecta donde haga falta; no hay singleton global.
type KV struct {
	client *goredis.Client
}

// Open conecta y hace ping con timeout corto para fallar rápido si Redis
// no está disponible.
func Open(addr string) (*KV, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &KV{client: client}, nil
}

func (k *KV) Close() error { return k.client.Close() }

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := k.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.client.Set(ctx, key, value, 0).Err()
}

func (k *KV) Del(ctx context.Context, keys ...string) (int, error) {
	n, err := k.client.Del(ctx, keys...).Result()
	return int(n), err
}

func (k *KV) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := k.client.HGet(ctx, key, field).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (k *KV) HSet(ctx context.Context, key, field, value string) error {
	return k.client.HSet(ctx, key, field, value).Err()
}

func (k *KV) HDel(ctx context.Context, key string, fields ...string) error {
	return k.client.HDel(ctx, key, fields...).Err()
}

func (k *KV) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return k.client.HGetAll(ctx, key).Result()
}

func (k *KV) Keys(ctx context.Context, pattern string) ([]string, error) {
	return k.client.Keys(ctx, pattern).Result()
}
