package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	AnchorNorthWest = "northwest"
	AnchorCenter    = "center"

	BackendLibrary = "library"
	BackendConvert = "convert"
)

// Config holds every knob of a batch run. The zero value is not usable; start from Default.
type Config struct {
	SourceRoot string   `yaml:"source_root"`
	Categories []string `yaml:"categories"`
	OutputDir  string   `yaml:"output_dir"`
	Suffix     string   `yaml:"suffix"`

	Start  int     `yaml:"start"`
	Step   float64 `yaml:"step"`
	Canvas int     `yaml:"canvas"`

	Anchor string `yaml:"anchor"`
	Fill   string `yaml:"fill"`

	Backend       string `yaml:"backend"`
	ConvertBinary string `yaml:"convert_binary"`

	Workers           int  `yaml:"workers"`
	KeepIntermediates bool `yaml:"keep_intermediates"`
	Manifest          bool `yaml:"manifest"`
}

// Default returns the hard-wired settings of the original batch: both color
// directories under 600px, a 600px ladder with step 1.5, one image at a time.
func Default() *Config {
	return &Config{
		SourceRoot:    DefaultSourceRoot,
		Categories:    append([]string(nil), DefaultCategories...),
		OutputDir:     DefaultOutputDir,
		Suffix:        DefaultSuffix,
		Start:         DefaultStart,
		Step:          DefaultStep,
		Canvas:        DefaultCanvas,
		Anchor:        AnchorNorthWest,
		Fill:          "#ffffff",
		Backend:       BackendLibrary,
		ConvertBinary: "convert",
		Workers:       1,
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Validate checks the settings a run depends on
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return errors.New("source_root is required")
	}
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	for _, cat := range c.Categories {
		if cat == "" {
			return errors.New("category names must not be empty")
		}
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if c.Suffix == "" {
		return errors.New("suffix is required")
	}
	if c.Start < 1 {
		return errors.Errorf("start must be at least 1, got %d", c.Start)
	}
	if !(c.Step > 1) || math.IsInf(c.Step, 0) {
		return errors.Errorf("step must be greater than 1, got %v", c.Step)
	}
	if c.Canvas < c.Start {
		return errors.Errorf("canvas (%d) must not be smaller than start (%d)", c.Canvas, c.Start)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := ParseColor(c.Fill); err != nil {
		return err
	}

	switch c.Anchor {
	case AnchorNorthWest, AnchorCenter:
	default:
		return errors.Errorf("unknown anchor %q", c.Anchor)
	}

	switch c.Backend {
	case BackendLibrary:
	case BackendConvert:
		if c.ConvertBinary == "" {
			return errors.New("convert_binary is required for the convert backend")
		}
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
