package sharpen

import (
	"mu-bmd-sharpen/internal/islands"
	"mu-bmd-sharpen/internal/mesh"
)

// classify marks an edge hard when faces from two or more islands touch it.
func classify(v *mesh.View, p islands.Partition) []bool {
	edgeIslands := make([]map[int]struct{}, v.NumEdges())

	for island, faces := range p.Faces() {
		for _, f := range faces {
			for _, s := range v.Sides(f) {
				set := edgeIslands[s.Edge]
				if set == nil {
					set = make(map[int]struct{}, 2)
					edgeIslands[s.Edge] = set
				}
				set[island] = struct{}{}
			}
		}
	}

	hard := make([]bool, v.NumEdges())
	for ei, set := range edgeIslands {
		hard[ei] = len(set) > 1
	}
	return hard
}
