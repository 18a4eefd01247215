package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Convert shells out to ImageMagick's convert, the way the sheets were first produced.
// Unlike the original script, a non-zero exit is reported.
type Convert struct {
	Binary string
	Canvas int
	Anchor Anchor
	Fill   color.Color
}

func NewConvert(binary string, canvas int, anchor Anchor, fill color.Color) *Convert {
	return &Convert{Binary: binary, Canvas: canvas, Anchor: anchor, Fill: fill}
}

func (c *Convert) Variant(ctx context.Context, src string, size int, dst string) error {
	return c.run(ctx, c.variantArgs(src, size, dst))
}

func (c *Convert) Concat(ctx context.Context, srcs []string, dst string) error {
	if len(srcs) == 0 {
		return errors.New("nothing to concatenate")
	}
	return c.run(ctx, c.concatArgs(srcs, dst))
}

func (c *Convert) variantArgs(src string, size int, dst string) []string {
	args := []string{
		src,
		"-resize", fmt.Sprintf("%dx%d", size, size),
		"-background", imColor(c.Fill),
	}
	if c.Anchor == Center {
		args = append(args, "-gravity", "center")
	}
	return append(args, "-extent", fmt.Sprintf("%dx%d", c.Canvas, c.Canvas), dst)
}

func (c *Convert) concatArgs(srcs []string, dst string) []string {
	args := append([]string(nil), srcs...)
	return append(args, "-background", imColor(c.Fill), "+append", dst)
}

func (c *Convert) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, c.Binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return errors.Wrapf(err, "%s failed", c.Binary)
		}
		return errors.Wrapf(err, "%s failed: %s", c.Binary, msg)
	}
	return nil
}

func imColor(c color.Color) string {
	if c == nil {
		return "white"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
