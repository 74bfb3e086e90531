package main

import (
	"flag"
	"fmt"
	"os"

	"mu-bmd-sharpen/internal/bmd"
	"mu-bmd-sharpen/internal/sharpen"
)

func main() {
	weld := flag.Bool("weld", false, "Merge vertices with identical positions")
	tolerance := flag.Float64("tolerance", 0, "UV match tolerance (default: exact)")
	edges := flag.Bool("edges", false, "List hard edges")
	flag.Parse()

	failed := false
	for _, arg := range flag.Args() {
		model, err := bmd.Parse(arg, bmd.DefaultKeys())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		fmt.Printf("\n=== %s (name=%q version=%d meshes=%d) ===\n", arg, model.Name, model.Version, len(model.Meshes))

		for i := range model.Meshes {
			src := &model.Meshes[i]
			m, stats, err := src.Topology(fmt.Sprintf("%s#%d", arg, i), bmd.TopologyOptions{Weld: *weld})
			if err != nil {
				fmt.Printf("  Mesh[%d]: %v\n", i, err)
				failed = true
				continue
			}

			a, err := sharpen.Compute(m, sharpen.Options{UVTolerance: *tolerance})
			if err != nil {
				fmt.Printf("  Mesh[%d]: v=%d uv=%d faces=%d tex=%q: %v\n",
					i, len(src.Verts), len(src.UVs), len(m.Faces), src.TexPath, err)
				continue
			}

			fmt.Printf("  Mesh[%d]: v=%d uv=%d faces=%d edges=%d islands=%d hard=%d boundary=%d welded=%d tex=%q\n",
				i, len(src.Verts), len(src.UVs), len(m.Faces), len(a.Edges),
				a.Islands.Count, a.HardCount(), a.Boundary, stats.Welded, src.TexPath)

			if *edges {
				for _, e := range a.HardEdges() {
					fmt.Printf("    hard %d-%d\n", e.A, e.B)
				}
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}
