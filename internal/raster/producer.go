package raster

import (
	"context"
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Producer turns a source image into sheet tiles and joins tiles into a sheet.
// Every call either writes dst completely or returns an error.
type Producer interface {
	Variant(ctx context.Context, src string, size int, dst string) error
	Concat(ctx context.Context, srcs []string, dst string) error
}

// Batcher is implemented by producers that can render every tile of a source from a
// single decode. dsts[i] receives the tile for sizes[i].
type Batcher interface {
	Variants(ctx context.Context, src string, sizes []int, dsts []string) error
}

// Library runs every operation in-process.
type Library struct {
	Canvas int
	Anchor Anchor
	Fill   color.Color
}

func NewLibrary(canvas int, anchor Anchor, fill color.Color) *Library {
	return &Library{Canvas: canvas, Anchor: anchor, Fill: fill}
}

// Variant fits src into a size x size box, extends it to the canvas and writes dst.
func (l *Library) Variant(ctx context.Context, src string, size int, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := Open(src)
	if err != nil {
		return err
	}
	return Save(Extend(Fit(img, size), l.Canvas, l.Anchor, l.Fill), dst)
}

// Variants decodes src once and writes one tile per size, in order. It stops at the
// first failure; tiles already written are left for the caller to remove.
func (l *Library) Variants(ctx context.Context, src string, sizes []int, dsts []string) error {
	if len(sizes) != len(dsts) {
		return errors.Errorf("%d sizes for %d destinations", len(sizes), len(dsts))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := Open(src)
	if err != nil {
		return err
	}
	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Save(Extend(Fit(img, size), l.Canvas, l.Anchor, l.Fill), dsts[i]); err != nil {
			return errors.Wrapf(err, "size %d", size)
		}
	}
	return nil
}

// Concat joins srcs left to right in the given order and writes dst.
func (l *Library) Concat(ctx context.Context, srcs []string, dst string) error {
	imgs := make([]image.Image, 0, len(srcs))
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := Open(src)
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
	}

	sheet, err := Concat(imgs, l.Fill)
	if err != nil {
		return err
	}
	return Save(sheet, dst)
}
