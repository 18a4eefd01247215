package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"pixelspriter/internal/config"
	"pixelspriter/internal/ui"
)

// Source is one input image. Sources are read, never modified.
type Source struct {
	Category string
	Path     string
	Base     string
	Ext      string
}

func NewSource(category, path string) Source {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return Source{
		Category: category,
		Path:     path,
		Base:     strings.TrimSuffix(name, ext),
		Ext:      ext,
	}
}

// key identifies the files a source produces. Sources sharing a key overwrite each other.
func (s Source) key() string {
	return s.Base + s.Ext
}

func (s Source) String() string {
	return filepath.Join(s.Category, s.Base+s.Ext)
}

// Eligible reports whether the file at path should be treated as a source image:
// a regular file (symlinks followed) whose name does not start with a dot and that
// is not a sheet, manifest or tile written by an earlier run.
func Eligible(cfg *config.Config, path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if Produced(cfg, path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Produced reports whether path names a file the driver writes: it sits directly in
// the output directory and is named like <base>-tiled<ext>, <base>-tiled<ext>.json or
// <base>-<size><ext>. The output directory may be a category directory, so other files
// there are still sources.
func Produced(cfg *config.Config, path string) bool {
	if !sameDir(cfg.OutputDir, filepath.Dir(path)) {
		return false
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".json")
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if cfg.Suffix != "" && strings.HasSuffix(stem, cfg.Suffix) {
		return true
	}

	i := strings.LastIndexByte(stem, '-')
	if i <= 0 || i == len(stem)-1 {
		return false
	}
	return strings.Trim(stem[i+1:], "0123456789") == ""
}

func sameDir(a, b string) bool {
	a, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	b, err = filepath.Abs(b)
	return err == nil && a == b
}

// Discover lists the source images of every configured category, categories in
// configuration order and files by name. Missing category directories are skipped.
func Discover(cfg *config.Config) ([]Source, error) {
	var sources []Source

	for _, category := range cfg.Categories {
		dir := cfg.SourceDir(category)

		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				ui.Warning("Category directory not found, skipping: " + dir)
				continue
			}
			return nil, errors.Wrapf(err, "list %s", dir)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if !Eligible(cfg, path) {
				continue
			}
			sources = append(sources, NewSource(category, path))
		}
	}

	return sources, nil
}
