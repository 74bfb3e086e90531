package islands

import (
	"math"

	"mu-bmd-sharpen/internal/mesh"
)

// Partition assigns every face of a view to a UV island.
// Island indices are labels in discovery order and carry no ranking.
type Partition struct {
	FaceIsland []int
	Count      int
}

// Options controls how loop UVs are compared across a shared edge.
type Options struct {
	// Tolerance is the largest per-component difference still treated as equal.
	// Zero means exact equality.
	Tolerance float64
}

// Compute partitions the view's faces into UV islands with an explicit-queue
// flood fill over UV-continuous face adjacency.
func Compute(v *mesh.View, opts Options) Partition {
	n := v.NumFaces()
	p := Partition{FaceIsland: make([]int, n)}
	if n == 0 {
		return p
	}

	adj := linkFaces(v, opts)

	for i := range p.FaceIsland {
		p.FaceIsland[i] = -1
	}

	queue := make([]int, 0, 64)
	for seed := 0; seed < n; seed++ {
		if p.FaceIsland[seed] >= 0 {
			continue
		}

		id := p.Count
		p.Count++
		p.FaceIsland[seed] = id
		queue = append(queue[:0], seed)

		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			for _, g := range adj[f] {
				if p.FaceIsland[g] < 0 {
					p.FaceIsland[g] = id
					queue = append(queue, g)
				}
			}
		}
	}

	return p
}

// Faces groups face indices by island.
func (p Partition) Faces() [][]int {
	out := make([][]int, p.Count)
	for f, id := range p.FaceIsland {
		out[id] = append(out[id], f)
	}
	return out
}

// linkFaces builds the UV-continuous face graph. Every pair of faces on an
// edge is considered, so non-manifold edges link all matching pairs.
func linkFaces(v *mesh.View, opts Options) [][]int {
	adj := make([][]int, v.NumFaces())
	for ei := 0; ei < v.NumEdges(); ei++ {
		faces := v.EdgeFaces(ei)
		if len(faces) < 2 {
			continue
		}
		for i := 0; i < len(faces); i++ {
			si, _ := v.SideOf(faces[i], ei)
			for j := i + 1; j < len(faces); j++ {
				sj, _ := v.SideOf(faces[j], ei)
				if Continuous(si, sj, opts.Tolerance) {
					adj[faces[i]] = append(adj[faces[i]], faces[j])
					adj[faces[j]] = append(adj[faces[j]], faces[i])
				}
			}
		}
	}
	return adj
}

// Continuous reports whether two sides of the same edge agree in UV space at
// both endpoints.
func Continuous(a, b mesh.Side, tol float64) bool {
	return uvEqual(a.UVA, b.UVA, tol) && uvEqual(a.UVB, b.UVB, tol)
}

func uvEqual(a, b mesh.UV, tol float64) bool {
	if tol <= 0 {
		return a == b
	}
	return math.Abs(float64(a[0])-float64(b[0])) <= tol &&
		math.Abs(float64(a[1])-float64(b[1])) <= tol
}
