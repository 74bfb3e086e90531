package mesh

// Side is one edge of a face as seen from that face: the edge index in the
// view plus the UVs of the face's loops at the edge's A and B vertices.
type Side struct {
	Edge int
	UVA  UV
	UVB  UV
}

// View is a read-only adjacency view over a mesh and one UV layer.
// Face order follows the mesh; edges are numbered in first-seen order.
type View struct {
	sides     [][]Side
	edges     []Edge
	edgeFaces [][]int
	edgeIndex map[Edge]int
}

// NewView builds the adjacency view for the mesh's active UV layer.
func NewView(m *Mesh) (*View, error) {
	layer := m.ActiveLayer()
	if layer == nil {
		return nil, ErrNoActiveUVLayer
	}
	return NewLayerView(m.Faces, layer)
}

// NewLayerView builds the adjacency view for faces and an explicit UV layer.
func NewLayerView(faces []Face, layer *UVLayer) (*View, error) {
	if layer == nil {
		return nil, ErrNoActiveUVLayer
	}
	if len(layer.Corners) != len(faces) {
		return nil, &LayerMismatchError{Face: -1, Want: len(faces), Got: len(layer.Corners)}
	}

	v := &View{
		sides:     make([][]Side, len(faces)),
		edgeIndex: make(map[Edge]int),
	}

	for fi, f := range faces {
		n := len(f.Verts)
		if n < 3 {
			return nil, &DegenerateFaceError{Face: fi, Reason: "fewer than 3 vertices"}
		}
		uvs := layer.Corners[fi]
		if len(uvs) != n {
			return nil, &LayerMismatchError{Face: fi, Want: n, Got: len(uvs)}
		}

		sides := make([]Side, n)
		for c := 0; c < n; c++ {
			next := (c + 1) % n
			a, b := f.Verts[c], f.Verts[next]
			if a == b {
				return nil, &DegenerateFaceError{Face: fi, Reason: "repeated vertex on consecutive corners"}
			}

			e := MakeEdge(a, b)
			ei, ok := v.edgeIndex[e]
			if !ok {
				ei = len(v.edges)
				v.edgeIndex[e] = ei
				v.edges = append(v.edges, e)
				v.edgeFaces = append(v.edgeFaces, nil)
			}

			// Record each face once per edge even if its cycle crosses the edge twice.
			incident := v.edgeFaces[ei]
			if len(incident) == 0 || incident[len(incident)-1] != fi {
				v.edgeFaces[ei] = append(incident, fi)
			}

			uvA, uvB := uvs[c], uvs[next]
			if a != e.A {
				uvA, uvB = uvB, uvA
			}
			sides[c] = Side{Edge: ei, UVA: uvA, UVB: uvB}
		}
		v.sides[fi] = sides
	}

	return v, nil
}

// NumFaces returns the number of faces in the view.
func (v *View) NumFaces() int { return len(v.sides) }

// NumEdges returns the number of distinct edges referenced by faces.
func (v *View) NumEdges() int { return len(v.edges) }

// Sides returns face f's sides in face-cycle order.
func (v *View) Sides(f int) []Side { return v.sides[f] }

// Edge returns the edge with index ei.
func (v *View) Edge(ei int) Edge { return v.edges[ei] }

// Edges returns all edges in first-seen order.
func (v *View) Edges() []Edge { return v.edges }

// EdgeFaces returns the faces incident to edge ei, in face order.
func (v *View) EdgeFaces(ei int) []int { return v.edgeFaces[ei] }

// EdgeIndex looks up the index of e.
func (v *View) EdgeIndex(e Edge) (int, bool) {
	ei, ok := v.edgeIndex[e]
	return ei, ok
}

// SideOf returns face f's side along edge ei.
func (v *View) SideOf(f, ei int) (Side, bool) {
	for _, s := range v.sides[f] {
		if s.Edge == ei {
			return s, true
		}
	}
	return Side{}, false
}
