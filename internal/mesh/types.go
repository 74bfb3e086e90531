package mesh

// VertexID is an opaque vertex identifier. Positions play no part in island
// computation, so a mesh only carries identities.
type VertexID int

// UV is one texture coordinate pair.
type UV [2]float32

// Edge is an unordered vertex pair, stored with A <= B.
type Edge struct {
	A, B VertexID
}

// MakeEdge returns the normalized edge between a and b.
func MakeEdge(a, b VertexID) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Less orders edges by (A, B).
func (e Edge) Less(o Edge) bool {
	if e.A != o.A {
		return e.A < o.A
	}
	return e.B < o.B
}

// Face is an ordered vertex cycle. Smooth is an output attribute.
type Face struct {
	Verts  []VertexID
	Smooth bool
}

// UVLayer holds one UV per face corner: Corners[face][corner] lines up with
// Faces[face].Verts[corner].
type UVLayer struct {
	Name    string
	Corners [][]UV
}

// Mesh holds topology, UV layers and the per-edge hardness marks.
type Mesh struct {
	Name     string
	Faces    []Face
	UVLayers []UVLayer
	ActiveUV int // index into UVLayers, -1 when none is active

	// Hard holds every edge that has been marked; a missing key reads as smooth.
	Hard map[Edge]bool
}

// ActiveLayer returns the active UV layer, or nil when there is none.
func (m *Mesh) ActiveLayer() *UVLayer {
	if m.ActiveUV < 0 || m.ActiveUV >= len(m.UVLayers) {
		return nil
	}
	return &m.UVLayers[m.ActiveUV]
}

// IsHard reports whether e is currently marked hard.
func (m *Mesh) IsHard(e Edge) bool {
	return m.Hard[e]
}
