package hungerindex

import "context"

// KV es el subconjunto de comandos clave-valor que usa el índice.
// Los Get/HGet devuelven (valor, existe, error) para distinguir ausencia
// de error de transporte.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) (int, error)

	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSet(ctx context.Context, key, field, value string) error
	HDel(ctx context.Context, key string, fields ...string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	Keys(ctx context.Context, pattern string) ([]string, error)
}
