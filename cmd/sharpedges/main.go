package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"mu-bmd-sharpen/internal/batch"
	"mu-bmd-sharpen/internal/bmd"
	"mu-bmd-sharpen/internal/config"
	"mu-bmd-sharpen/internal/itemlist"
	"mu-bmd-sharpen/internal/preview"
	"mu-bmd-sharpen/internal/sharpen"
	"mu-bmd-sharpen/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	envFile := flag.String("env", ".env", "Optional .env file with SHARPEN_* overrides")
	items := flag.String("items", "", "ItemList.xml listing models to process")
	modelDir := flag.String("models", "", "Directory model files in ItemList.xml are relative to")
	outputDir := flag.String("output", "", "Output directory (default: sharp-edges)")
	report := flag.String("report", "", "Report file (default: <output>/report.json)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	tolerance := flag.Float64("tolerance", 0, "UV match tolerance (default: exact)")
	format := flag.String("format", "", "Preview format: webp or tga (default: webp)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	testN := flag.Int("test", 0, "Process only the first N models")
	var previewFlag, weldFlag optionalBool
	flag.Var(&previewFlag, "preview", "Write UV island preview images")
	flag.Var(&weldFlag, "weld", "Merge vertices with identical positions")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [model.bmd | dir]...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	cfg.Resolve(config.Flags{
		ModelDir:      *modelDir,
		ItemListXML:   *items,
		OutputDir:     *outputDir,
		ReportFile:    *report,
		PreviewFormat: *format,
		Workers:       *workers,
		PreviewSize:   *size,
		UVTolerance:   *tolerance,
		Preview:       previewFlag.ptr(),
		Weld:          weldFlag.ptr(),
	})

	keys, err := bmd.DefaultKeys().WithLEAHex(cfg.LEAKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pf, err := preview.ParseFormat(cfg.PreviewFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jobs, err := collectJobs(cfg, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}
	if len(jobs) == 0 {
		fmt.Println("No models to process.")
		os.Exit(0)
	}

	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Keys:      keys,
		Topology: bmd.TopologyOptions{
			Weld:           cfg.WeldVertices,
			DropDegenerate: cfg.DropDegenerateFaces,
		},
		Sharpen:       sharpen.Options{UVTolerance: cfg.UVTolerance},
		Preview:       cfg.Preview,
		PreviewFormat: pf,
		PreviewSize:   cfg.PreviewSize,
		Supersample:   cfg.Supersample,
		Workers:       cfg.Workers,
		Progress:      2 * time.Second,
	}
	if cfg.Preview {
		texDirs := modelDirs(jobs)
		if cfg.ModelDir != "" {
			texDirs = append(texDirs, cfg.ModelDir)
		}
		idx := texture.BuildIndex(texDirs...)
		cache, err := texture.NewCache(idx, texture.DefaultCacheSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		batchCfg.Textures = cache
		fmt.Printf("Textures: %d indexed\n", idx.Len())
	}

	fmt.Printf("Sharp edges by UV islands\n")
	fmt.Printf("Models: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, runErr := batch.Run(ctx, batchCfg, jobs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	summary := batch.Summarize(results)
	fmt.Printf("Processed: %d/%d, hard edges: %d\n", summary.Succeeded, summary.Models, summary.HardEdges)

	if summary.Failed > 0 {
		fmt.Printf("\nFailed (%d):\n", summary.Failed)
		shown := 0
		for _, r := range results {
			if r.Success || r.Path == "" {
				continue
			}
			fmt.Printf("  %s: %s\n", r.Path, r.Error)
			if shown++; shown == 20 {
				break
			}
		}
	}

	if err := batch.WriteReport(cfg.ReportFile, summary); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
	} else {
		fmt.Printf("Report: %s\n", cfg.ReportFile)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Interrupted: %v\n", runErr)
		os.Exit(1)
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func collectJobs(cfg config.Config, args []string) ([]batch.Job, error) {
	var jobs []batch.Job
	if cfg.ItemListXML != "" {
		defs, err := itemlist.Parse(cfg.ItemListXML)
		if err != nil {
			return nil, err
		}
		jobs = batch.FromItems(cfg.ModelDir, defs)
	}
	if len(args) > 0 {
		more, err := batch.Collect(args)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, more...)
	}
	return jobs, nil
}

// modelDirs returns the distinct directories holding the jobs' models.
func modelDirs(jobs []batch.Job) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, j := range jobs {
		d := filepath.Dir(j.Path)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}
