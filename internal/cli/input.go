package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/slidecase/pkg/params"
)

// paramFlags are the flags shared by every command that reads a design.
type paramFlags struct {
	mode string
	sets []string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "product mode: box, tray, staining_rack or cabinet_drawer")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "override a parameter, e.g. --set num_slots=30 (repeatable)")
}

// load reads the parameter file at path, or the defaults when path is
// empty, then applies --mode and --set.
func (f *paramFlags) load(path string) (params.Params, error) {
	p := params.Default()
	if path != "" {
		var err error
		if p, err = params.LoadTOML(path); err != nil {
			return params.Params{}, err
		}
	}

	overrides, err := parseSets(f.sets)
	if err != nil {
		return params.Params{}, err
	}
	if f.mode != "" {
		overrides["mode"] = f.mode
	}
	if len(overrides) == 0 {
		return p, nil
	}
	return params.Apply(p, overrides)
}

// parseSets splits key=value pairs. Keys may use dashes in place of
// underscores.
func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		out[strings.ReplaceAll(key, "-", "_")] = strings.TrimSpace(value)
	}
	return out, nil
}

// designName names outputs after the parameter file, or the mode when the
// defaults were used.
func designName(path string, p params.Params) string {
	if path == "" {
		return string(p.Mode)
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
