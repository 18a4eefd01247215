package config

import (
	"fmt"
	"path/filepath"
)

const (
	DefaultSourceRoot = "600px"
	DefaultOutputDir  = "scaled"
	DefaultSuffix     = "-tiled"

	DefaultStart  = 600
	DefaultStep   = 1.5
	DefaultCanvas = 600

	LockName = ".pixelspriter.lock"
)

// DefaultCategories are the two color variants every sheet set ships with.
var DefaultCategories = []string{"black", "white"}

// Layout:
// 600px/
//  ├── black/ (sources)
//  └── white/ (sources)
// scaled/
//  ├── <base>-<size><ext> (intermediates, removed after each image)
//  ├── <base>-tiled<ext>
//  └── <base>-tiled<ext>.json (with --manifest)

func (c *Config) SourceDir(category string) string {
	return filepath.Join(c.SourceRoot, category)
}

func (c *Config) ScaledPath(base string, size int, ext string) string {
	return filepath.Join(c.OutputDir, fmt.Sprintf("%s-%d%s", base, size, ext))
}

func (c *Config) TiledPath(base, ext string) string {
	return filepath.Join(c.OutputDir, base+c.Suffix+ext)
}

// ManifestPath keeps the source extension so foo.png and foo.jpg get separate manifests.
func (c *Config) ManifestPath(base, ext string) string {
	return filepath.Join(c.OutputDir, base+c.Suffix+ext+".json")
}

func (c *Config) LockPath() string {
	return filepath.Join(c.OutputDir, LockName)
}
