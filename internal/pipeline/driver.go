// Package pipeline drives a batch: for every source image it renders one tile per ladder
// size, joins the tiles into a sheet and removes the tiles again.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"pixelspriter/internal/config"
	"pixelspriter/internal/ladder"
	"pixelspriter/internal/raster"
	"pixelspriter/internal/sheet"
	"pixelspriter/internal/ui"
)

type Driver struct {
	cfg      *config.Config
	producer raster.Producer
	sizes    []int
}

// Result describes one finished sheet.
type Result struct {
	Source   Source
	Sheet    string
	Manifest string
	Sizes    []int
	Elapsed  time.Duration
}

func NewDriver(cfg *config.Config, producer raster.Producer) (*Driver, error) {
	sizes, err := ladder.Sizes(cfg.Start, cfg.Step)
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, producer: producer, sizes: sizes}, nil
}

// Sizes is the tile ladder shared by every source, largest first.
func (d *Driver) Sizes() []int {
	return append([]int(nil), d.sizes...)
}

// Process renders the sheet for a single source. Intermediate tiles are removed whether
// or not the sheet could be built, unless the config keeps them.
func (d *Driver) Process(ctx context.Context, src Source) (res Result, err error) {
	start := time.Now()
	res = Result{Source: src, Sizes: d.Sizes()}

	if err := os.MkdirAll(d.cfg.OutputDir, 0755); err != nil {
		return res, errors.Wrap(err, "create output directory")
	}

	outputs := make([]string, 0, len(d.sizes))
	defer func() {
		if d.cfg.KeepIntermediates {
			return
		}
		if cerr := removeAll(outputs); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "%s: cleanup", src)
		}
	}()

	if b, ok := d.producer.(raster.Batcher); ok {
		for _, size := range d.sizes {
			outputs = append(outputs, d.cfg.ScaledPath(src.Base, size, src.Ext))
		}
		if err := b.Variants(ctx, src.Path, d.sizes, outputs); err != nil {
			return res, errors.Wrapf(err, "%s", src)
		}
		log.Printf("%s: %d tiles from one decode", src, len(outputs))
	} else {
		for _, size := range d.sizes {
			path := d.cfg.ScaledPath(src.Base, size, src.Ext)
			outputs = append(outputs, path)

			if err := d.producer.Variant(ctx, src.Path, size, path); err != nil {
				return res, errors.Wrapf(err, "%s: size %d", src, size)
			}
			log.Printf("%s: tile %d -> %s", src, size, path)
		}
	}

	tiled := d.cfg.TiledPath(src.Base, src.Ext)
	if err := d.producer.Concat(ctx, outputs, tiled); err != nil {
		return res, errors.Wrapf(err, "%s: concatenate", src)
	}
	res.Sheet = tiled

	if d.cfg.Manifest {
		path := d.cfg.ManifestPath(src.Base, src.Ext)
		m := sheet.NewManifest(src.Base, src.Ext, d.sizes, d.cfg.Canvas, d.cfg.Step)
		if err := m.Write(path); err != nil {
			return res, err
		}
		res.Manifest = path
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func removeAll(paths []string) error {
	var first error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && first == nil {
			first = err
		}
	}
	return first
}

// Failure is a source whose sheet could not be built.
type Failure struct {
	Source Source
	Err    error
}

type Report struct {
	Results  []Result
	Failures []Failure
}

func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Err summarises the failures, or returns nil when every sheet was built.
func (r *Report) Err() error {
	switch len(r.Failures) {
	case 0:
		return nil
	case 1:
		return r.Failures[0].Err
	}
	return errors.Errorf("%d of %d images failed, first: %v",
		len(r.Failures), len(r.Failures)+len(r.Results), r.Failures[0].Err)
}

// Run processes sources and keeps going past failed images. With more than one worker,
// images are processed concurrently; sources that write the same sheet stay ordered.
func (d *Driver) Run(ctx context.Context, sources []Source) *Report {
	groups := group(sources)
	outcomes := make([][]outcome, len(groups))

	workers := min(max(d.cfg.Workers, 1), max(len(groups), 1))
	runPool(ctx, workers, len(groups), func(i int) {
		outcomes[i] = d.runGroup(ctx, groups[i])
	})

	report := &Report{}
	for i, g := range groups {
		for j, src := range g {
			if j >= len(outcomes[i]) {
				report.Failures = append(report.Failures, Failure{Source: src, Err: ctxErr(ctx)})
				continue
			}
			o := outcomes[i][j]
			if o.err != nil {
				report.Failures = append(report.Failures, Failure{Source: src, Err: o.err})
			} else {
				report.Results = append(report.Results, o.res)
			}
		}
	}
	return report
}

type outcome struct {
	res Result
	err error
}

func (d *Driver) runGroup(ctx context.Context, g []Source) []outcome {
	var out []outcome
	for _, src := range g {
		if ctx.Err() != nil {
			return out
		}

		ui.Info(fmt.Sprintf("Processing %s (%d tiles)...", src, len(d.sizes)))
		res, err := d.Process(ctx, src)
		if err != nil {
			ui.Error(err.Error())
		} else {
			ui.Success(fmt.Sprintf("Wrote %s in %s", res.Sheet, res.Elapsed.Round(time.Millisecond)))
		}
		out = append(out, outcome{res: res, err: err})
	}
	return out
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return context.Canceled
}

// group bundles sources by output key, keeping first-seen order of keys and of sources
// within a key.
func group(sources []Source) [][]Source {
	index := make(map[string]int)
	var groups [][]Source
	for _, src := range sources {
		i, ok := index[src.key()]
		if !ok {
			i = len(groups)
			index[src.key()] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], src)
	}
	return groups
}
