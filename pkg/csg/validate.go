package csg

import (
	"fmt"
	"strings"
)

// Problem is a degenerate node found by Validate.
type Problem struct {
	// Path lists the kinds and feature tags from the root to the node,
	// e.g. "difference/feature:finger_notch/cylinder".
	Path    string
	Message string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Validate reports leaves with non-positive sizes, prisms with fewer than
// three vertices, and operators missing operands. A nil tree is valid.
func Validate(n *Node) []Problem {
	var out []Problem
	validate(n, nil, &out)
	return out
}

func validate(n *Node, path []string, out *[]Problem) {
	if n == nil {
		return
	}
	step := n.Kind.String()
	if n.Kind == KindFeature {
		step += ":" + n.Feature
	}
	path = append(path, step)
	report := func(format string, args ...any) {
		*out = append(*out, Problem{Path: strings.Join(path, "/"), Message: fmt.Sprintf(format, args...)})
	}

	switch n.Kind {
	case KindBox:
		for _, d := range []struct {
			axis string
			v    float64
		}{{"X", n.Size.X}, {"Y", n.Size.Y}, {"Z", n.Size.Z}} {
			if !(d.v > 0) {
				report("box dimension %s is %.4f, must be positive", d.axis, d.v)
			}
		}
	case KindCylinder:
		if !(n.Height > 0) {
			report("cylinder height is %.4f, must be positive", n.Height)
		}
		if !(n.Radius > 0) {
			report("cylinder radius is %.4f, must be positive", n.Radius)
		}
	case KindPrism:
		if len(n.Profile) < 3 {
			report("prism profile has %d vertices, need at least 3", len(n.Profile))
		}
		if !(n.Depth > 0) {
			report("prism depth is %.4f, must be positive", n.Depth)
		}
	case KindUnion, KindDifference:
		if len(n.Children) == 0 {
			report("%s has no operands", n.Kind)
		}
	case KindTranslate, KindRotate, KindFeature:
		if len(n.Children) != 1 {
			report("%s has %d children, want 1", n.Kind, len(n.Children))
		}
	default:
		report("unknown node kind")
	}

	for _, c := range n.Children {
		validate(c, path, out)
	}
}
