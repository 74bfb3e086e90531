package batch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Report is the JSON document written after a batch run.
type Report struct {
	Models    int      `json:"models"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	HardEdges int      `json:"hard_edges"`
	Results   []Result `json:"results"`
}

// Summarize counts outcomes over results.
func Summarize(results []Result) Report {
	r := Report{Models: len(results), Results: results}
	for _, res := range results {
		if res.Success {
			r.Succeeded++
		} else {
			r.Failed++
		}
		for _, m := range res.Meshes {
			r.HardEdges += m.Hard
		}
	}
	return r
}

// WriteReport writes the report as indented JSON, creating parent directories.
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "batch: encode report")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "batch: report dir")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "batch: write %s", path)
}
