package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/slidecase/pkg/engine"
	"github.com/chazu/slidecase/pkg/export"
	"github.com/chazu/slidecase/pkg/pipeline"
	"github.com/chazu/slidecase/pkg/studio"
)

func newEvalCmd() *cobra.Command {
	var (
		write  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "eval script.lisp",
		Short: "Run a Lisp design script",
		Long: `Eval runs a design script in a sandboxed interpreter and validates every
design it defines, for example:

  (defdesign "bench" (slide-box :slide :iso :num-slots 50 :density :working))`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if asJSON {
				k, err := newKernel(configFromContext(cmd.Context()))
				if err != nil {
					return err
				}
				s := studio.NewWithKernel(k)
				result := s.Evaluate(cmd.Context(), string(src))
				if err := export.WriteJSON(w, result); err != nil {
					return err
				}
				if len(result.Errors) > 0 {
					return fmt.Errorf("%s: %d errors", args[0], len(result.Errors))
				}
				return nil
			}

			designs, evalErrs, err := engine.NewEngine().Evaluate(string(src))
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					printError(w, "%s:%s", args[0], e.Error())
				}
				return fmt.Errorf("%s: %d evaluation errors", args[0], len(evalErrs))
			}
			if len(designs) == 0 {
				printWarning(w, "script defines no designs")
				return nil
			}

			failed := 0
			for i, d := range designs {
				name := d.Name
				if name == "" {
					name = fmt.Sprintf("design%d", i+1)
				}
				if !write {
					res, err := pipeline.Generate(d.Params)
					printInfo(w, "%s %s", StyleTitle.Render(name), StyleDim.Render(string(d.Params.Mode)))
					printReport(w, res.Report)
					if err != nil {
						failed++
					} else {
						printDetail(w, "%d parts", len(res.Parts))
					}
					continue
				}
				if err := generateOne(cmd.Context(), w, name, d.Params); err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d designs failed", failed, len(designs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "also write meshes for every valid design")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print designs, meshes and findings as one JSON document")
	return cmd
}
