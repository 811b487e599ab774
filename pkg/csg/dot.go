package csg

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT renders n as a Graphviz digraph, one vertex per node.
func ToDOT(name string, n *Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	if name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", name)
	}
	buf.WriteString("\n")

	ids := map[*Node]int{}
	var edges []string
	Walk(n, func(n *Node, _ int) bool {
		if _, seen := ids[n]; seen {
			return false
		}
		id := len(ids)
		ids[n] = id
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(dotAttrs(n), ", "))
		return true
	})
	Walk(n, func(n *Node, _ int) bool {
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  n%d -> n%d;\n", ids[n], ids[c]))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range dedupe(edges) {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(n *Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", label(n))}
	switch n.Kind {
	case KindFeature:
		attrs = append(attrs, "fillcolor=lightyellow")
	case KindDifference:
		attrs = append(attrs, "fillcolor=mistyrose")
	case KindBox, KindCylinder, KindPrism:
		attrs = append(attrs, "shape=ellipse", "fillcolor=lightblue")
	}
	return attrs
}

func label(n *Node) string {
	switch n.Kind {
	case KindBox:
		return fmt.Sprintf("box %.2f x %.2f x %.2f", n.Size.X, n.Size.Y, n.Size.Z)
	case KindCylinder:
		return fmt.Sprintf("cylinder h=%.2f r=%.2f", n.Height, n.Radius)
	case KindPrism:
		return fmt.Sprintf("prism %d pts d=%.2f", len(n.Profile), n.Depth)
	case KindTranslate:
		return fmt.Sprintf("translate [%.2f %.2f %.2f]", n.Offset.X, n.Offset.Y, n.Offset.Z)
	case KindRotate:
		return fmt.Sprintf("rotate [%.0f %.0f %.0f]", n.Offset.X, n.Offset.Y, n.Offset.Z)
	case KindFeature:
		return n.Feature
	default:
		return n.Kind.String()
	}
}

func dedupe(lines []string) []string {
	seen := map[string]bool{}
	out := lines[:0]
	for _, l := range lines {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// RenderSVG lays out a DOT document with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
