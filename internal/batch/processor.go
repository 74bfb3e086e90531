package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"mu-bmd-sharpen/internal/bmd"
	"mu-bmd-sharpen/internal/mesh"
	"mu-bmd-sharpen/internal/preview"
	"mu-bmd-sharpen/internal/sharpen"
	"mu-bmd-sharpen/internal/texture"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir     string
	Keys          bmd.Keys
	Topology      bmd.TopologyOptions
	Sharpen       sharpen.Options
	Preview       bool
	PreviewFormat preview.Format
	PreviewSize   int
	Supersample   int
	Textures      texture.Resolver // optional preview background
	Workers       int
	Progress      time.Duration // progress log interval; zero disables it
}

// MeshResult is the outcome for one sub-mesh.
type MeshResult struct {
	Index     int      `json:"index"`
	Texture   string   `json:"texture,omitempty"`
	Faces     int      `json:"faces"`
	Edges     int      `json:"edges"`
	Islands   int      `json:"islands"`
	Hard      int      `json:"hard"`
	Boundary  int      `json:"boundary"`
	Welded    int      `json:"welded,omitempty"`
	Dropped   int      `json:"dropped,omitempty"`
	HardEdges [][2]int `json:"hard_edges,omitempty"`
	Preview   string   `json:"preview,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Result holds the outcome of processing one model file.
type Result struct {
	Name    string       `json:"name"`
	Path    string       `json:"path"`
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Meshes  []MeshResult `json:"meshes,omitempty"`
}

// Run processes all jobs on a bounded worker pool. Every model is independent;
// failures are recorded per result. The error is non-nil only when ctx ends
// before all jobs are done.
func Run(ctx context.Context, cfg Config, jobs []Job) ([]Result, error) {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if p := processed.Load(); p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						slog.Info("batch progress", "done", p, "total", total, "models_per_sec", fmt.Sprintf("%.1f", rate))
					}
				}
			}
		}()
	}
	defer close(done)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processModel(cfg, jobs[i])
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func processModel(cfg Config, job Job) Result {
	res := Result{Name: job.Name, Path: job.Path}

	model, err := bmd.Parse(job.Path, cfg.Keys)
	if err != nil {
		res.Error = err.Error()
		slog.Warn("model skipped", "path", job.Path, "error", err)
		return res
	}
	if len(model.Meshes) == 0 {
		res.Error = "no meshes in BMD"
		return res
	}

	res.Success = true
	for i := range model.Meshes {
		mr := processMesh(cfg, job, i, &model.Meshes[i])
		if mr.Error != "" {
			res.Success = false
			slog.Warn("mesh skipped", "path", job.Path, "mesh", i, "error", mr.Error)
		}
		res.Meshes = append(res.Meshes, mr)
	}
	if !res.Success {
		res.Error = "one or more meshes failed"
	}
	return res
}

// processMesh runs one independent sharp-edge invocation on a sub-mesh.
func processMesh(cfg Config, job Job, idx int, src *bmd.Mesh) MeshResult {
	mr := MeshResult{Index: idx, Texture: src.TexPath}
	name := fmt.Sprintf("%s#%d", job.Name, idx)

	m, stats, err := src.Topology(name, cfg.Topology)
	if err != nil {
		mr.Error = err.Error()
		return mr
	}
	mr.Faces = len(m.Faces)
	mr.Welded = stats.Welded
	mr.Dropped = stats.Dropped

	a, err := sharpen.Run(m, cfg.Sharpen)
	if err != nil {
		mr.Error = err.Error()
		return mr
	}
	mr.Edges = len(a.Edges)
	mr.Islands = a.Islands.Count
	mr.Hard = a.HardCount()
	mr.Boundary = a.Boundary
	mr.HardEdges = edgePairs(a.HardEdges())

	if cfg.Preview {
		path, err := writePreview(cfg, m, a, src.TexPath, job.Name, idx)
		if err != nil {
			mr.Error = err.Error()
			return mr
		}
		mr.Preview = path
	}
	return mr
}

func writePreview(cfg Config, m *mesh.Mesh, a *sharpen.Assignment, texName, name string, idx int) (string, error) {
	opts := preview.Options{Size: cfg.PreviewSize, Supersample: cfg.Supersample}
	if cfg.Textures != nil && texName != "" {
		opts.Texture = cfg.Textures.Resolve(texName)
	}
	img := preview.Render(m, a, opts)

	format := cfg.PreviewFormat
	if format == "" {
		format = preview.FormatWebP
	}
	path := filepath.Join(cfg.OutputDir, "previews", fmt.Sprintf("%s_%d%s", name, idx, format.Ext()))
	if err := preview.WriteFile(path, img, format); err != nil {
		return "", err
	}
	return path, nil
}

func edgePairs(edges []mesh.Edge) [][2]int {
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{int(e.A), int(e.B)}
	}
	return out
}
