package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chazu/slidecase/pkg/constraint"
	"github.com/chazu/slidecase/pkg/dims"
	"github.com/chazu/slidecase/pkg/estimate"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/slide"
)

func newValidateCmd() *cobra.Command {
	var pf paramFlags
	cmd := &cobra.Command{
		Use:   "validate [params.toml]",
		Short: "Check a design against the manufacturability rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load(optionalArg(args))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			std := p.Slide()
			g := dims.Derive(std, p)
			printKeyValue(w, "slide", fmt.Sprintf("%s %gx%gx%g mm", p.SlideStandard, std.Length, std.Width, std.Thickness))
			printKeyValue(w, "slot width", fmt.Sprintf("%.2f mm", g.SlotWidth))
			printKeyValue(w, "pitch", fmt.Sprintf("%.2f mm", g.Pitch))
			printKeyValue(w, "rib", fmt.Sprintf("%.2f mm (tip %.2f)", g.RibRootWidth, g.RibTipWidth))

			report := constraint.Validate(p)
			printReport(w, report)
			return report.Err()
		},
	}
	pf.register(cmd)
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var (
		pf          paramFlags
		constrained bool
	)
	cmd := &cobra.Command{
		Use:   "estimate [params.toml]",
		Short: "Estimate how long a full render takes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load(optionalArg(args))
			if err != nil {
				return err
			}
			res, err := estimate.ForParams(p, constrained)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printKeyValue(w, "estimate", res.Duration.String())
			if res.Warn {
				printWarning(w, "render is expected to exceed %s", estimate.WarnAfter)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&constrained, "constrained", false, "assume a resource-constrained machine")
	return cmd
}

func newStandardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the built-in slide standards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def := params.Default()
			var rows [][]string
			for i, std := range slide.Standards() {
				sw := dims.SlotWidth(std.Thickness, def.ToleranceZ)
				rows = append(rows, []string{
					strconv.Itoa(i),
					slide.Index(i).String(),
					strconv.FormatFloat(std.Length, 'f', -1, 64),
					strconv.FormatFloat(std.Width, 'f', -1, 64),
					strconv.FormatFloat(std.Thickness, 'f', 1, 64),
					fmt.Sprintf("%.2f", sw),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Standard", "Length", "Width", "Thickness", "Slot"}, rows))
			return nil
		},
	}
}
