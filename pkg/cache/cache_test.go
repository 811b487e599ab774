package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chazu/slidecase/pkg/export"
	"github.com/chazu/slidecase/pkg/params"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NullCache{}
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if _, err := LoadMeshes(ctx, c, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("LoadMeshes error = %v, want ErrCacheMiss", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "meshes"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "absent"); hit || err != nil {
		t.Fatalf("Get(absent) = hit %v err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q %v %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry not removed: %v", err)
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get = hit %v err %v, want clean miss", hit, err)
	}
}

func TestMeshKey(t *testing.T) {
	p := params.Default()
	q := p
	q.NumSlots++

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"deterministic", MeshKey(p, "sdfx", 64), MeshKey(p, "sdfx", 64), true},
		{"params change key", MeshKey(p, "sdfx", 64), MeshKey(q, "sdfx", 64), false},
		{"resolution changes key", MeshKey(p, "sdfx", 64), MeshKey(p, "sdfx", 128), false},
		{"backend changes key", MeshKey(p, "sdfx", 64), MeshKey(p, "manifold", 64), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.a == tt.b) != tt.same {
				t.Errorf("keys %s and %s: same = %v, want %v", tt.a, tt.b, tt.a == tt.b, tt.same)
			}
		})
	}
	if len(MeshKey(p, "sdfx", 1)) != len("mesh:")+64 {
		t.Errorf("key length = %d", len(MeshKey(p, "sdfx", 1)))
	}
}

func TestStoreAndLoadMeshes(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := MeshKey(params.Default(), "sdfx", 64)
	if _, err := LoadMeshes(ctx, c, key); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("LoadMeshes before store = %v, want ErrCacheMiss", err)
	}

	in := []export.MeshData{{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
		PartName: "box_base",
		Color:    "#4A90D9",
	}}
	if err := StoreMeshes(ctx, c, key, in, 0); err != nil {
		t.Fatalf("StoreMeshes: %v", err)
	}
	out, err := LoadMeshes(ctx, c, key)
	if err != nil {
		t.Fatalf("LoadMeshes: %v", err)
	}
	if len(out) != 1 || out[0].PartName != "box_base" || len(out[0].Indices) != 3 {
		t.Errorf("loaded = %+v", out)
	}

	if err := c.Set(ctx, key, []byte("garbage"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMeshes(ctx, c, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("corrupt payload error = %v, want ErrCacheMiss", err)
	}
}
