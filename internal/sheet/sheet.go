// Package sheet describes where each tile sits inside a tiled sprite sheet and which tile a
// viewer should sample for a given on-screen size.
package sheet

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Tile is one ladder step. Its content occupies the top-left Size x Size region of the
// Canvas x Canvas cell starting at X.
type Tile struct {
	Index int `json:"index"`
	Size  int `json:"size"`
	X     int `json:"x"`
}

type Manifest struct {
	Base   string  `json:"base"`
	Ext    string  `json:"ext"`
	Canvas int     `json:"canvas"`
	Step   float64 `json:"step"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Tiles  []Tile  `json:"tiles"`
}

// Layout places sizes left to right in generation order.
func Layout(sizes []int, canvas int) []Tile {
	tiles := make([]Tile, len(sizes))
	for i, size := range sizes {
		tiles[i] = Tile{Index: i, Size: size, X: i * canvas}
	}
	return tiles
}

func NewManifest(base, ext string, sizes []int, canvas int, step float64) *Manifest {
	return &Manifest{
		Base:   base,
		Ext:    ext,
		Canvas: canvas,
		Step:   step,
		Width:  len(sizes) * canvas,
		Height: canvas,
		Tiles:  Layout(sizes, canvas),
	}
}

func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "write manifest %s", path)
	}
	return nil
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", path)
	}
	return &m, nil
}

func logStep(n, step float64) float64 {
	return math.Log(n) / math.Log(step)
}

// Pick returns the tile index to sample when drawing a sheet of the given base size at
// display pixels, and the edge length of the region to read from that tile.
// Anything larger than the first power of step below base reads the full first tile.
func Pick(base int, step, display float64) (int, float64) {
	top := math.Floor(logStep(float64(base), step))
	if display > math.Pow(step, top) {
		return 0, float64(base)
	}

	k := math.Ceil(logStep(display, step))
	return int(top - k + 1), math.Pow(step, k)
}

// Pick is the package-level Pick clamped to the tiles present in m.
func (m *Manifest) Pick(display float64) Tile {
	if len(m.Tiles) == 0 {
		return Tile{}
	}
	idx, _ := Pick(m.Tiles[0].Size, m.Step, display)
	idx = min(max(idx, 0), len(m.Tiles)-1)
	return m.Tiles[idx]
}
