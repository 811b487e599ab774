package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chazu/slidecase/internal/config"
	"github.com/chazu/slidecase/pkg/cache"
	"github.com/chazu/slidecase/pkg/export"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/pipeline"
	"github.com/chazu/slidecase/pkg/realize"
)

func newGenerateCmd() *cobra.Command {
	var (
		pf    paramFlags
		batch bool
	)

	cmd := &cobra.Command{
		Use:   "generate [params.toml...]",
		Short: "Validate a design and write its part meshes",
		Long: `Generate validates the design, assembles its parts and writes one mesh per part.

Without --batch at most one parameter file is accepted. With --batch every
file is generated in parallel; with --batch and no files, every mode is
generated from the defaults plus any --set overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch {
				return runBatch(cmd.Context(), cmd.OutOrStdout(), &pf, args)
			}
			if len(args) > 1 {
				return fmt.Errorf("generate takes one parameter file; use --batch for more")
			}
			path := optionalArg(args)
			p, err := pf.load(path)
			if err != nil {
				return err
			}
			return generateOne(cmd.Context(), cmd.OutOrStdout(), designName(path, p), p)
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&batch, "batch", false, "generate several designs in parallel")
	return cmd
}

// generateOne runs the pipeline for p and writes its meshes.
func generateOne(ctx context.Context, w io.Writer, name string, p params.Params) error {
	res, err := pipeline.Generate(p)
	printInfo(w, "%s %s", StyleTitle.Render(name), StyleDim.Render(string(p.Mode)))
	printReport(w, res.Report)
	if err != nil {
		return err
	}
	return writeResult(ctx, w, name, res)
}

func runBatch(ctx context.Context, w io.Writer, pf *paramFlags, paths []string) error {
	logger := loggerFromContext(ctx)

	var reqs []pipeline.Request
	if len(paths) == 0 {
		p, err := pf.load("")
		if err != nil {
			return err
		}
		reqs = pipeline.AllModes(p)
	}
	for _, path := range paths {
		p, err := pf.load(path)
		if err != nil {
			return err
		}
		reqs = append(reqs, pipeline.Request{Name: designName(path, p), Params: p})
	}
	dedupeNames(reqs)

	jobs := make(map[string]string, len(reqs))
	for _, r := range reqs {
		jobs[r.Name] = uuid.NewString()
		logger.Debug("queued", "job", jobs[r.Name], "design", r.Name, "mode", r.Params.Mode)
	}

	prog := newProgress(logger)
	outcomes, err := pipeline.GenerateAll(ctx, reqs)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Assembled %d designs", len(outcomes)))

	failed := 0
	for _, o := range outcomes {
		printInfo(w, "%s %s", StyleTitle.Render(o.Name), StyleDim.Render(string(o.Params.Mode)))
		printReport(w, o.Report)
		if o.Err != nil {
			failed++
			logger.Error("design failed", "job", jobs[o.Name], "design", o.Name, "err", o.Err)
			continue
		}
		if err := writeResult(ctx, w, o.Name, o.Result); err != nil {
			return fmt.Errorf("%s: %w", o.Name, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d designs failed validation", failed, len(outcomes))
	}
	return nil
}

// dedupeNames suffixes repeated design names with -2, -3 and so on, so two
// files sharing a base name in different directories write distinct outputs.
func dedupeNames(reqs []pipeline.Request) {
	taken := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		taken[r.Name] = true
	}
	seen := make(map[string]bool, len(reqs))
	for i, r := range reqs {
		if !seen[r.Name] {
			seen[r.Name] = true
			continue
		}
		name := r.Name
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", r.Name, n)
		}
		taken[name] = true
		seen[name] = true
		reqs[i].Name = name
	}
}

// writeResult meshes res, through the cache, and writes the configured
// format into the output directory.
func writeResult(ctx context.Context, w io.Writer, name string, res pipeline.Result) error {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	c, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	meshes, cached, err := meshesFor(ctx, c, cfg, res)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatJSON:
		path := filepath.Join(cfg.OutputDir, name+".json")
		if err := writeFile(path, func(f io.Writer) error { return export.WriteJSON(f, meshes) }); err != nil {
			return err
		}
		printFile(w, path, cached)
	default:
		for _, m := range meshes {
			path := filepath.Join(cfg.OutputDir, name+"_"+m.PartName+".stl")
			if err := writeFile(path, func(f io.Writer) error { return export.WriteSTL(f, m.Mesh()) }); err != nil {
				return err
			}
			printFile(w, path, cached)
		}
	}
	logger.Debug("wrote meshes", "design", name, "parts", len(meshes), "cached", cached)
	return nil
}

// meshesFor returns cached meshes for res, realizing and storing them on a
// miss.
func meshesFor(ctx context.Context, c cache.Cache, cfg config.Config, res pipeline.Result) ([]export.MeshData, bool, error) {
	logger := loggerFromContext(ctx)
	k, err := newKernel(cfg)
	if err != nil {
		return nil, false, err
	}
	key := cache.MeshKey(res.Params, cfg.Kernel, cfg.MeshCells)

	meshes, err := cache.LoadMeshes(ctx, c, key)
	if err == nil {
		return meshes, true, nil
	}
	logger.Debug("cache miss", "key", key[:16], "reason", err)

	prog := newProgress(logger)
	r := realize.New(k, res.Params.FN)
	km, err := r.Parts(ctx, res.Parts)
	if err != nil {
		return nil, false, err
	}
	prog.done(fmt.Sprintf("Meshed %d parts", len(km)))

	meshes = export.Meshes(km, res.Parts)
	if err := cache.StoreMeshes(ctx, c, key, meshes, cfg.CacheTTL); err != nil {
		logger.Warn("could not cache meshes", "err", err)
	}
	return meshes, false, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
