package memory

import (
	"context"
	"path"
	"sync"
)

// KV es una implementación en memoria del almacén clave-valor del índice,
// para desarrollo y tests. Strings y hashes comparten el espacio de claves,
// igual que en Redis.
type KV struct {
	mu      sync.RWMutex
	strings map[string]string
	hashes  map[string]map[string]string
}

func NewKV() *KV {
	return &KV{
		strings: make(map[string]string),
		hashes:  make(map[string]map[string]string),
	}
}

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	v, ok := k.strings[key]
	return v, ok, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.strings[key] = value
	return nil
}

func (k *KV) Del(ctx context.Context, keys ...string) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	n := 0
	for _, key := range keys {
		if _, ok := k.strings[key]; ok {
			delete(k.strings, key)
			n++
			continue
		}
		if _, ok := k.hashes[key]; ok {
			delete(k.hashes, key)
			n++
		}
	}
	return n, nil
}

func (k *KV) HGet(ctx context.Context, key, field string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	h, ok := k.hashes[key]
	if !ok {
		return "", false, nil
	}
	v, ok := h[field]
	return v, ok, nil
}

func (k *KV) HSet(ctx context.Context, key, field, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	h, ok := k.hashes[key]
	if !ok {
		h = make(map[string]string)
		k.hashes[key] = h
	}
	h[field] = value
	return nil
}

func (k *KV) HDel(ctx context.Context, key string, fields ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	h, ok := k.hashes[key]
	if !ok {
		return nil
	}
	for _, f := range fields {
		delete(h, f)
	}
	// como Redis: un hash vacío deja de existir
	if len(h) == 0 {
		delete(k.hashes, key)
	}
	return nil
}

func (k *KV) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make(map[string]string, len(k.hashes[key]))
	for f, v := range k.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (k *KV) Keys(ctx context.Context, pattern string) ([]string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]string, 0)
	for key := range k.strings {
		if matched, _ := path.Match(pattern, key); matched {
			out = append(out, key)
		}
	}
	for key := range k.hashes {
		if matched, _ := path.Match(pattern, key); matched {
			out = append(out, key)
		}
	}
	return out, nil
}
