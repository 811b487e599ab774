// Package cache stores realized meshes so repeated runs with identical
// parameters skip the kernel.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/slidecase/pkg/export"
	"github.com/chazu/slidecase/pkg/params"
)

// ErrCacheMiss is returned when an item is not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store with optional expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// MeshKey identifies the meshes of one parameter set from one kernel
// backend at one resolution.
func MeshKey(p params.Params, backend string, cells int) string {
	data, _ := json.Marshal(struct {
		Params  params.Params `json:"params"`
		Backend string        `json:"backend"`
		Cells   int           `json:"cells"`
	}{p, backend, cells})
	return "mesh:" + Hash(data)
}

// LoadMeshes returns cached meshes for key, or ErrCacheMiss.
func LoadMeshes(ctx context.Context, c Cache, key string) ([]export.MeshData, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	var meshes []export.MeshData
	if err := json.Unmarshal(data, &meshes); err != nil {
		_ = c.Delete(ctx, key)
		return nil, fmt.Errorf("%w: corrupt entry: %v", ErrCacheMiss, err)
	}
	return meshes, nil
}

// StoreMeshes caches meshes under key.
func StoreMeshes(ctx context.Context, c Cache, key string, meshes []export.MeshData, ttl time.Duration) error {
	data, err := json.Marshal(meshes)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
