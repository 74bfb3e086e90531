package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and processing settings.
type Config struct {
	// Paths
	ModelDir    string `json:"model_dir" yaml:"model_dir"`
	ItemListXML string `json:"item_list_xml" yaml:"item_list_xml"`
	OutputDir   string `json:"output_dir" yaml:"output_dir"`
	ReportFile  string `json:"report_file" yaml:"report_file"`

	// Island detection
	UVTolerance         float64 `json:"uv_tolerance" yaml:"uv_tolerance"`
	WeldVertices        bool    `json:"weld_vertices" yaml:"weld_vertices"`
	DropDegenerateFaces bool    `json:"drop_degenerate_faces" yaml:"drop_degenerate_faces"`
	LEAKey              string  `json:"lea_key" yaml:"lea_key"`

	// Preview settings
	Preview       bool   `json:"preview" yaml:"preview"`
	PreviewFormat string `json:"preview_format" yaml:"preview_format"`
	PreviewSize   int    `json:"preview_size" yaml:"preview_size"`
	Supersample   int    `json:"supersample" yaml:"supersample"`

	Workers int `json:"workers" yaml:"workers"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHARPEN_"

// LoadEnv loads a .env file when one exists and applies SHARPEN_* variables
// over the config. Variables already set in the process win over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "config: env file %s", envFile)
		}
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	var err error
	parse := func(key string, fn func(string) error) {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" || err != nil {
			return
		}
		if perr := fn(v); perr != nil {
			err = errors.Wrapf(perr, "config: %s%s", EnvPrefix, key)
		}
	}

	str("MODEL_DIR", &c.ModelDir)
	str("ITEM_LIST_XML", &c.ItemListXML)
	str("OUTPUT_DIR", &c.OutputDir)
	str("REPORT_FILE", &c.ReportFile)
	str("PREVIEW_FORMAT", &c.PreviewFormat)
	str("LEA_KEY", &c.LEAKey)
	parse("WORKERS", func(v string) (e error) { c.Workers, e = strconv.Atoi(v); return })
	parse("PREVIEW_SIZE", func(v string) (e error) { c.PreviewSize, e = strconv.Atoi(v); return })
	parse("SUPERSAMPLE", func(v string) (e error) { c.Supersample, e = strconv.Atoi(v); return })
	parse("UV_TOLERANCE", func(v string) (e error) { c.UVTolerance, e = strconv.ParseFloat(v, 64); return })
	parse("PREVIEW", func(v string) (e error) { c.Preview, e = strconv.ParseBool(v); return })
	parse("WELD_VERTICES", func(v string) (e error) { c.WeldVertices, e = strconv.ParseBool(v); return })
	parse("DROP_DEGENERATE_FACES", func(v string) (e error) { c.DropDegenerateFaces, e = strconv.ParseBool(v); return })
	return err
}

// Flags holds CLI flag values that override config file settings.
// Pointer fields are nil when the flag was not given.
type Flags struct {
	ModelDir      string
	ItemListXML   string
	OutputDir     string
	ReportFile    string
	PreviewFormat string
	Workers       int
	PreviewSize   int
	UVTolerance   float64
	Preview       *bool
	Weld          *bool
}

// Resolve applies flags and fills any empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.ModelDir != "" {
		c.ModelDir = flags.ModelDir
	}
	if flags.ItemListXML != "" {
		c.ItemListXML = flags.ItemListXML
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ReportFile != "" {
		c.ReportFile = flags.ReportFile
	}
	if flags.PreviewFormat != "" {
		c.PreviewFormat = flags.PreviewFormat
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.UVTolerance > 0 {
		c.UVTolerance = flags.UVTolerance
	}
	if flags.Preview != nil {
		c.Preview = *flags.Preview
	}
	if flags.Weld != nil {
		c.WeldVertices = *flags.Weld
	}

	if c.OutputDir == "" {
		c.OutputDir = "sharp-edges"
	}
	if c.ReportFile == "" {
		c.ReportFile = filepath.Join(c.OutputDir, "report.json")
	} else if !filepath.IsAbs(c.ReportFile) && filepath.Dir(c.ReportFile) == "." {
		c.ReportFile = filepath.Join(c.OutputDir, c.ReportFile)
	}
	if c.ItemListXML != "" && c.ModelDir == "" {
		c.ModelDir = filepath.Dir(c.ItemListXML)
	}

	if c.PreviewFormat == "" {
		c.PreviewFormat = "webp"
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.UVTolerance < 0 {
		c.UVTolerance = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
