// Package export writes realized meshes in viewer and printer formats.
package export

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/kernel"
)

// MeshData is the JSON mesh format consumed by viewers.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Design   string    `json:"design,omitempty"`
	Label    string    `json:"label,omitempty"`
	Color    string    `json:"color"`
}

// Meshes pairs meshes with the parts they were realized from, copying each
// part's label and color.
func Meshes(meshes []*kernel.Mesh, parts []assemble.Part) []MeshData {
	byID := make(map[string]assemble.Part, len(parts))
	for _, p := range parts {
		byID[p.ID] = p
	}
	out := make([]MeshData, 0, len(meshes))
	for _, m := range meshes {
		p := byID[m.PartName]
		out = append(out, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Label:    p.Label,
			Color:    p.Color,
		})
	}
	return out
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Triangles converts a mesh to sdfx triangles.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		c := m.Triangle(i)
		var t sdf.Triangle3
		for j := range c {
			t[j] = v3.Vec{X: float64(c[j][0]), Y: float64(c[j][1]), Z: float64(c[j][2])}
		}
		tris = append(tris, &t)
	}
	return tris
}

// SaveSTL writes the meshes to path as one binary STL.
func SaveSTL(path string, meshes ...*kernel.Mesh) error {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		tris = append(tris, Triangles(m)...)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

const stlHeaderSize = 80

// WriteSTL streams m as binary STL: an 80 byte header, a little-endian
// triangle count, then a normal, three corners and a zero attribute word
// per triangle.
func WriteSTL(w io.Writer, m *kernel.Mesh) error {
	var header [stlHeaderSize]byte
	copy(header[:], m.PartName)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	n := m.TriangleCount()
	if err := binary.Write(w, binary.LittleEndian, uint32(n)); err != nil {
		return err
	}

	type facet struct {
		Normal  [3]float32
		Corners [3][3]float32
		Attr    uint16
	}
	for i := 0; i < n; i++ {
		f := facet{Corners: m.Triangle(i)}
		f.Normal = facetNormal(f.Corners)
		if err := binary.Write(w, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("writing triangle %d: %w", i, err)
		}
	}
	return nil
}

func facetNormal(c [3][3]float32) [3]float32 {
	var u, v [3]float64
	for k := 0; k < 3; k++ {
		u[k] = float64(c[1][k] - c[0][k])
		v[k] = float64(c[2][k] - c[0][k])
	}
	n := [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 {
		return [3]float32{}
	}
	return [3]float32{float32(n[0] / l), float32(n[1] / l), float32(n[2] / l)}
}

// Mesh converts d back to a kernel mesh.
func (d MeshData) Mesh() *kernel.Mesh {
	return &kernel.Mesh{
		Vertices: d.Vertices,
		Normals:  d.Normals,
		Indices:  d.Indices,
		PartName: d.PartName,
	}
}
