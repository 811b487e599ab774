package export

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/kernel"
)

// tetra is a unit tetrahedron with one vertex per triangle corner.
func tetra(name string) *kernel.Mesh {
	corners := [][3]float32{
		{0, 0, 0}, {0, 1, 0}, {1, 0, 0},
		{0, 0, 0}, {1, 0, 0}, {0, 0, 1},
		{0, 0, 0}, {0, 0, 1}, {0, 1, 0},
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	m := &kernel.Mesh{PartName: name}
	for i, c := range corners {
		m.Vertices = append(m.Vertices, c[0], c[1], c[2])
		m.Normals = append(m.Normals, 0, 0, 0)
		m.Indices = append(m.Indices, uint32(i))
	}
	return m
}

func TestMeshesCopiesPartMetadata(t *testing.T) {
	parts := []assemble.Part{
		{ID: "box_base", Label: "Base", Color: "#4A90D9"},
		{ID: "box_lid", Label: "Lid", Color: "#E67E22"},
	}
	got := Meshes([]*kernel.Mesh{tetra("box_lid"), tetra("stray")}, parts)
	if len(got) != 2 {
		t.Fatalf("got %d meshes, want 2", len(got))
	}
	if got[0].Color != "#E67E22" || got[0].Label != "Lid" {
		t.Errorf("lid metadata = %q %q", got[0].Label, got[0].Color)
	}
	if got[1].PartName != "stray" || got[1].Color != "" {
		t.Errorf("unmatched mesh = %+v", got[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	data := Meshes([]*kernel.Mesh{tetra("tray")}, []assemble.Part{{ID: "tray", Color: "#2ECC71"}})
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded[0]["partName"] != "tray" || decoded[0]["color"] != "#2ECC71" {
		t.Errorf("decoded = %v", decoded[0])
	}
	if len(decoded[0]["indices"].([]any)) != 12 {
		t.Errorf("indices = %v", decoded[0]["indices"])
	}
}

func TestWriteSTL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, tetra("rack")); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	b := buf.Bytes()
	if want := 80 + 4 + 4*50; len(b) != want {
		t.Fatalf("size = %d, want %d", len(b), want)
	}
	if !bytes.HasPrefix(b, []byte("rack")) {
		t.Errorf("header = %q", b[:8])
	}
	if n := binary.LittleEndian.Uint32(b[80:84]); n != 4 {
		t.Errorf("triangle count = %d, want 4", n)
	}

	// First facet lies in z=0 wound clockwise seen from above.
	var normal [3]float32
	if err := binary.Read(bytes.NewReader(b[84:96]), binary.LittleEndian, &normal); err != nil {
		t.Fatal(err)
	}
	if normal != [3]float32{0, 0, -1} {
		t.Errorf("first normal = %v, want [0 0 -1]", normal)
	}
}

func TestSaveSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.stl")
	if err := SaveSTL(path, tetra("a"), tetra("b")); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) < 84 {
		t.Fatalf("file too short: %d bytes", len(b))
	}
	if n := binary.LittleEndian.Uint32(b[80:84]); n != 8 {
		t.Errorf("triangle count = %d, want 8", n)
	}
}

func TestTriangles(t *testing.T) {
	tris := Triangles(tetra("x"))
	if len(tris) != 4 {
		t.Fatalf("got %d triangles, want 4", len(tris))
	}
	if tris[3][2].Z != 1 {
		t.Errorf("last corner = %v", tris[3][2])
	}
}
