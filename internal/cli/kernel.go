package cli

import (
	"fmt"

	"github.com/chazu/slidecase/internal/config"
	"github.com/chazu/slidecase/pkg/kernel"
	"github.com/chazu/slidecase/pkg/kernel/manifold"
	"github.com/chazu/slidecase/pkg/kernel/sdfx"
)

// newKernel builds the geometry backend named by cfg.Kernel. The manifold
// backend only exists in binaries built with -tags=manifold.
func newKernel(cfg config.Config) (kernel.Kernel, error) {
	switch cfg.Kernel {
	case config.KernelManifold:
		k, err := manifold.New()
		if err != nil {
			return nil, fmt.Errorf("kernel %s: %w", cfg.Kernel, err)
		}
		return k, nil
	case config.KernelSDFX, "":
		return sdfx.NewWithCells(cfg.MeshCells), nil
	default:
		return nil, fmt.Errorf("unsupported kernel %q", cfg.Kernel)
	}
}
