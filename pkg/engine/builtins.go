package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/slidecase/pkg/dims"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/slide"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source for zygomys:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbols.
//  2. kebab-case identifiers become snake_case (slide-box -> slide_box),
//     since zygomys reads a hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are copied untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"' || c == '`':
			j := skipString(b, i)
			out = append(out, b[i:j]...)
			i = j

		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// skipString returns the index just past the string literal starting at i.
// Double-quoted strings honor backslash escapes; backtick strings do not.
func skipString(b []byte, i int) int {
	quote := b[i]
	j := i + 1
	for j < len(b) && b[j] != quote {
		if quote == '"' && b[j] == '\\' && j+1 < len(b) {
			j++
		}
		j++
	}
	if j < len(b) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpDesign carries a Design between builtins.
type sexpDesign struct {
	design Design
}

func (d *sexpDesign) SexpString(ps *zygo.PrintState) string {
	if d.design.Name != "" {
		return fmt.Sprintf("(design %q %s)", d.design.Name, d.design.Params.Mode)
	}
	return fmt.Sprintf("(design %s)", d.design.Params.Mode)
}
func (d *sexpDesign) Type() *zygo.RegisteredType { return nil }

// sexpSlide carries custom slide dimensions.
type sexpSlide struct {
	std slide.Standard
}

func (s *sexpSlide) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(custom-slide %.2fx%.2fx%.2f)", s.std.Length, s.std.Width, s.std.Thickness)
}
func (s *sexpSlide) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if _, dup := result.kw[name]; !dup {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Trailing keyword: a flag.
			result.kw[name] = &zygo.SexpBool{Val: true}
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a preprocessed keyword (:iso) or a plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, err := toString(s)
	if err != nil {
		return "", fmt.Errorf("expected keyword or string: %w", err)
	}
	return strings.TrimPrefix(str, kwPrefix), nil
}

// enumNames maps keyword values of enumerated parameters to their codes.
var enumNames = map[string]map[string]int{
	"slide_standard": {
		"iso": int(slide.ISO), "us": int(slide.US), "petrographic": int(slide.Petrographic),
		"supa-mega": int(slide.SupaMega), "custom": int(slide.Custom),
	},
	"density": {
		"archival": int(params.DensityArchival), "working": int(params.DensityWorking),
		"staining": int(params.DensityStaining), "mailer": int(params.DensityMailer),
	},
	"lid_latch": {
		"snap-fit": int(params.LatchSnapFit), "magnetic": int(params.LatchMagnetic), "none": int(params.LatchNone),
	},
	"rib_profile": {
		"tapered": int(params.RibTapered), "rectangular": int(params.RibRectangular),
	},
	"rail_profile": {
		"t-slot": int(params.RailTSlot), "l-rail": int(params.RailL),
	},
}

// paramValue converts one keyword argument into a FromMap value.
func paramValue(key string, s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		name := strings.TrimPrefix(v.S, kwPrefix)
		if names, ok := enumNames[key]; ok {
			code, ok := names[name]
			if !ok {
				return nil, fmt.Errorf("invalid %s %q", key, name)
			}
			return code, nil
		}
		return name, nil
	}
	return nil, fmt.Errorf("unsupported value %T (%s)", s, s.SexpString(nil))
}

// designFromArgs overlays keyword arguments onto the defaults for mode.
// :slide takes a standard keyword or a custom-slide value.
func designFromArgs(mode params.Mode, args []zygo.Sexp) (Design, error) {
	pa := parseArgs(args)
	if len(pa.positional) > 0 {
		return Design{}, fmt.Errorf("unexpected positional argument %s", pa.positional[0].SexpString(nil))
	}

	m := map[string]any{"mode": string(mode)}
	for _, name := range pa.order {
		key := strings.ReplaceAll(name, "-", "_")
		val := pa.kw[name]
		switch key {
		case "mode":
			return Design{}, fmt.Errorf("mode is set by the builder")
		case "slide":
			if cs, ok := val.(*sexpSlide); ok {
				m["slide_standard"] = int(slide.Custom)
				m["custom_slide_length"] = cs.std.Length
				m["custom_slide_width"] = cs.std.Width
				m["custom_slide_thickness"] = cs.std.Thickness
				continue
			}
			key = "slide_standard"
		}
		v, err := paramValue(key, val)
		if err != nil {
			return Design{}, fmt.Errorf("%s: %w", name, err)
		}
		m[key] = v
	}

	p, err := params.FromMap(m)
	if err != nil {
		return Design{}, err
	}
	return Design{Params: p}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector accumulates the designs a script defines.
type collector struct {
	designs []Design
}

func (c *collector) add(d Design) error {
	for _, prev := range c.designs {
		if prev.Name == d.Name {
			return fmt.Errorf("design %q defined twice", d.Name)
		}
	}
	c.designs = append(c.designs, d)
	return nil
}

// builders maps each script builder to the mode it produces.
var builders = map[string]params.Mode{
	"slide_box":     params.ModeBox,
	"slide_tray":    params.ModeTray,
	"staining_rack": params.ModeStainingRack,
	"slide_cabinet": params.ModeCabinetDrawer,
}

// registerBuiltins installs the design DSL into a zygomys environment.
// Source must be preprocessed with preprocessSource first so that :keyword
// tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	// (slide-box :num-slots 25 :density :working :lid-latch :magnetic)
	// (slide-tray ...) (staining-rack ...) (slide-cabinet ...)
	for name, mode := range builders {
		env.AddFunction(name, func(env *zygo.Zlisp, fn string, args []zygo.Sexp) (zygo.Sexp, error) {
			d, err := designFromArgs(mode, args)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			return &sexpDesign{design: d}, nil
		})
	}

	// (custom-slide :length 75 :width 50 :thickness 1.2)
	env.AddFunction("custom_slide", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		std := slide.Standard{}
		fields := map[string]*float64{"length": &std.Length, "width": &std.Width, "thickness": &std.Thickness}
		for kw, dst := range fields {
			v, ok := pa.kw[kw]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("custom-slide: missing :%s", kw)
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("custom-slide: %s: %w", kw, err)
			}
			*dst = f
		}
		return &sexpSlide{std: std}, nil
	})

	// (defdesign "archive-a" (slide-box ...))
	env.AddFunction("defdesign", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defdesign: expected a name and a design, got %d arguments", len(args))
		}
		dname, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defdesign: name: %w", err)
		}
		sd, ok := args[1].(*sexpDesign)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defdesign: expected design, got %T (%s)", args[1], args[1].SexpString(nil))
		}
		d := sd.design
		d.Name = dname
		if err := c.add(d); err != nil {
			return zygo.SexpNull, fmt.Errorf("defdesign: %w", err)
		}
		return &sexpDesign{design: d}, nil
	})

	// (rib-width :staining) -> 3.0
	env.AddFunction("rib_width", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("rib-width: expected 1 argument, got %d", len(args))
		}
		v, err := paramValue("density", args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rib-width: %w", err)
		}
		d, ok := v.(int)
		if !ok {
			if i, isInt := v.(int64); isInt {
				d, ok = int(i), true
			}
		}
		if !ok {
			return zygo.SexpNull, fmt.Errorf("rib-width: expected density keyword or index")
		}
		return &zygo.SexpFloat{Val: dims.RibWidthForDensity(params.Density(d))}, nil
	})

	// (slot-pitch thickness tolerance-z rib-width) -> pitch in mm
	env.AddFunction("slot_pitch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("slot-pitch: expected 3 arguments, got %d", len(args))
		}
		var v [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("slot-pitch: argument %d: %w", i+1, err)
			}
			v[i] = f
		}
		return &zygo.SexpFloat{Val: dims.Pitch(dims.SlotWidth(v[0], v[1]), v[2])}, nil
	})
}
