package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"mu-bmd-sharpen/internal/itemlist"
)

// Job is one model file to process.
type Job struct {
	Name string // label used in the report and preview file names
	Path string
}

// Collect turns files and directories into jobs. Directories are walked for
// *.bmd files; results are sorted by path and deduplicated.
func Collect(paths []string) ([]Job, error) {
	seen := make(map[string]bool)
	var jobs []Job
	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		jobs = append(jobs, Job{Name: strings.TrimSuffix(filepath.Base(clean), filepath.Ext(clean)), Path: clean})
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "batch: %s", p)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".bmd") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "batch: walk %s", p)
		}
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	return jobs, nil
}

// FromItems builds jobs for ItemList.xml entries, resolving model files
// against modelDir. Items sharing a model file produce one job.
func FromItems(modelDir string, items []itemlist.ItemDef) []Job {
	seen := make(map[string]bool)
	var jobs []Job
	for _, it := range items {
		path := filepath.Join(modelDir, filepath.FromSlash(strings.ReplaceAll(it.ModelFile, "\\", "/")))
		if seen[path] {
			continue
		}
		seen[path] = true
		jobs = append(jobs, Job{Name: strings.ReplaceAll(it.Key(), "/", "_"), Path: path})
	}
	return jobs
}
