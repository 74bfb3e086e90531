// Package sharpen marks mesh edges hard where they separate UV islands.
package sharpen

import (
	"sort"

	"github.com/pkg/errors"

	"mu-bmd-sharpen/internal/islands"
	"mu-bmd-sharpen/internal/mesh"
)

// Options tunes island detection.
type Options struct {
	UVTolerance float64
}

// Assignment is the smoothness result for one mesh. Edges and Hard are
// parallel slices in the adjacency view's edge order.
type Assignment struct {
	Edges      []mesh.Edge
	Hard       []bool
	FaceSmooth []bool
	Islands    islands.Partition
	// Boundary counts edges with a single incident face. They are left smooth.
	Boundary int
}

// Compute builds the assignment for the mesh's active UV layer. The mesh is not modified.
func Compute(m *mesh.Mesh, opts Options) (*Assignment, error) {
	layer := m.ActiveLayer()
	if layer == nil {
		return nil, errors.WithStack(mesh.ErrNoActiveUVLayer)
	}
	return ComputeLayer(m.Faces, layer, opts)
}

// ComputeLayer builds the assignment for explicit topology and UV layer.
func ComputeLayer(faces []mesh.Face, layer *mesh.UVLayer, opts Options) (*Assignment, error) {
	v, err := mesh.NewLayerView(faces, layer)
	if err != nil {
		return nil, errors.Wrap(err, "sharpen: adjacency")
	}

	p := islands.Compute(v, islands.Options{Tolerance: opts.UVTolerance})

	a := &Assignment{
		Edges:      v.Edges(),
		Hard:       classify(v, p),
		FaceSmooth: make([]bool, v.NumFaces()),
		Islands:    p,
	}
	for i := range a.FaceSmooth {
		a.FaceSmooth[i] = true
	}
	for ei := 0; ei < v.NumEdges(); ei++ {
		if len(v.EdgeFaces(ei)) == 1 {
			a.Boundary++
		}
	}
	return a, nil
}

// Apply clears every hard mark on m, sets all faces smooth, then writes the
// assignment's edge flags.
func (a *Assignment) Apply(m *mesh.Mesh) {
	if m.Hard == nil {
		m.Hard = make(map[mesh.Edge]bool, len(a.Edges))
	}
	for e := range m.Hard {
		m.Hard[e] = false
	}
	for i := range m.Faces {
		m.Faces[i].Smooth = true
	}
	for i, e := range a.Edges {
		m.Hard[e] = a.Hard[i]
	}
}

// Run computes the assignment and applies it. On error the mesh is untouched.
func Run(m *mesh.Mesh, opts Options) (*Assignment, error) {
	a, err := Compute(m, opts)
	if err != nil {
		return nil, err
	}
	a.Apply(m)
	return a, nil
}

// HardEdges returns the hard edges sorted by vertex pair.
func (a *Assignment) HardEdges() []mesh.Edge {
	var out []mesh.Edge
	for i, e := range a.Edges {
		if a.Hard[i] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// HardCount returns how many edges are hard.
func (a *Assignment) HardCount() int {
	n := 0
	for _, h := range a.Hard {
		if h {
			n++
		}
	}
	return n
}

// IsHard looks up an edge; ok is false when no face references it.
func (a *Assignment) IsHard(e mesh.Edge) (hard, ok bool) {
	for i, x := range a.Edges {
		if x == e {
			return a.Hard[i], true
		}
	}
	return false, false
}
