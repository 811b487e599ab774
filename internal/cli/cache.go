package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chazu/slidecase/internal/config"
	"github.com/chazu/slidecase/pkg/cache"
)

const appName = "slidecase"

// cacheDir resolves the mesh cache directory: the configured one, else
// $XDG_CACHE_HOME/slidecase, else ~/.cache/slidecase.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func openCache(cfg config.Config) (cache.Cache, error) {
	if cfg.NoCache {
		return cache.NullCache{}, nil
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return cache.NullCache{}, nil
	}
	return cache.NewFileCache(dir)
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the mesh cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached mesh",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(configFromContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			return clearCache(cmd.OutOrStdout(), dir)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(configFromContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})
	return cmd
}

func clearCache(w io.Writer, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		printInfo(w, "Cache is empty")
		return nil
	}
	if err != nil {
		return err
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		shard := filepath.Join(dir, e.Name())
		files, _ := os.ReadDir(shard)
		for _, f := range files {
			if os.Remove(filepath.Join(shard, f.Name())) == nil {
				count++
			}
		}
		os.Remove(shard)
	}
	printSuccess(w, "Cleared %d cached entries", count)
	printDetail(w, "Directory: %s", dir)
	return nil
}
