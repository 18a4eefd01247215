// Package ladder computes the geometric sequence of tile sizes that make up a sprite sheet.
package ladder

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrInvalidStart = errors.New("start size must be at least 1")
	ErrInvalidStep  = errors.New("step must be a finite number greater than 1")
)

// snap is how close a float must be to an integer to be treated as that integer.
const snap = 1e-9

// Sizes returns start followed by floor(step^(ceil(log_step(size))-1)) for each previous
// size, stopping once the next value drops below 1. The result is strictly decreasing and
// ends with 1.
func Sizes(start int, step float64) ([]int, error) {
	if start < 1 {
		return nil, errors.Wrapf(ErrInvalidStart, "got %d", start)
	}
	if !(step > 1) || math.IsInf(step, 0) {
		return nil, errors.Wrapf(ErrInvalidStep, "got %v", step)
	}

	var sizes []int
	for size := start; size >= 1; size = Next(size, step) {
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// Next is one step of the recurrence. Next(1, step) is 0 for any step > 1.
func Next(size int, step float64) int {
	return floor(math.Pow(step, float64(Exponent(size, step)-1)))
}

// Exponent returns the smallest k with step^k >= size, i.e. ceil(log_step(size)).
// The logarithm only gives a first guess; the power decides, so an exact power of step
// keeps its own exponent and a size just past one moves up to the next.
func Exponent(size int, step float64) int {
	k := int(math.Ceil(math.Log(float64(size)) / math.Log(step)))
	switch {
	case floor(math.Pow(step, float64(k))) < size:
		k++
	case floor(math.Pow(step, float64(k-1))) >= size:
		k--
	}
	return k
}

func floor(v float64) int {
	if r := math.Round(v); math.Abs(v-r) < snap {
		return int(r)
	}
	return int(math.Floor(v))
}
