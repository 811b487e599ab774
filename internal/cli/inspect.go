package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/pipeline"
)

func newInspectCmd() *cobra.Command {
	var (
		pf      paramFlags
		part    string
		dotPath string
		svgPath string
	)
	cmd := &cobra.Command{
		Use:   "inspect [params.toml]",
		Short: "Summarize part geometry and draw CSG trees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load(optionalArg(args))
			if err != nil {
				return err
			}
			res, err := pipeline.Generate(p)
			w := cmd.OutOrStdout()
			if err != nil {
				printReport(w, res.Report)
				return err
			}

			for _, pt := range res.Parts {
				b := csg.Bounds(pt.Geometry)
				size := b.Size()
				printInfo(w, "%s %s", StyleTitle.Render(pt.ID), StyleDim.Render(pt.Label))
				printDetail(w, "size %.1f x %.1f x %.1f mm, %d nodes", size.X, size.Y, size.Z, csg.Size(pt.Geometry))
				printDetail(w, "features %s", featureSummary(pt.Geometry))
				for _, prob := range csg.Validate(pt.Geometry) {
					printWarning(w, "%s", prob)
				}
				if len(pt.SlotLabels) > 0 {
					printDetail(w, "slots %s..%s", pt.SlotLabels[0], pt.SlotLabels[len(pt.SlotLabels)-1])
				}
			}

			if dotPath == "" && svgPath == "" {
				return nil
			}
			target, err := pickPart(res.Parts, part)
			if err != nil {
				return err
			}
			dot := csg.ToDOT(target.ID, target.Geometry)
			if dotPath != "" {
				if err := os.WriteFile(dotPath, []byte(dot), 0644); err != nil {
					return err
				}
				printFile(w, dotPath, false)
			}
			if svgPath != "" {
				svg, err := csg.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				if err := os.WriteFile(svgPath, svg, 0644); err != nil {
					return err
				}
				printFile(w, svgPath, false)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&part, "part", "", "part id to draw (default: first part)")
	cmd.Flags().StringVar(&dotPath, "dot", "", "write the part's CSG tree as Graphviz DOT")
	cmd.Flags().StringVar(&svgPath, "svg", "", "render the part's CSG tree to SVG")
	return cmd
}

func pickPart(parts []assemble.Part, id string) (assemble.Part, error) {
	if id == "" && len(parts) > 0 {
		return parts[0], nil
	}
	for _, p := range parts {
		if p.ID == id {
			return p, nil
		}
	}
	ids := make([]string, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	return assemble.Part{}, fmt.Errorf("no part %q (have %s)", id, strings.Join(ids, ", "))
}

// featureSummary renders feature counts sorted by name, e.g.
// "finger_notch=1 retention_rib=26".
func featureSummary(n *csg.Node) string {
	counts := csg.Features(n)
	if len(counts) == 0 {
		return "none"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fmt.Sprintf("%s=%d", name, counts[name])
	}
	return strings.Join(out, " ")
}
