package ladder

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestSizesReference(t *testing.T) {
	got, err := Sizes(600, 1.5)
	if err != nil {
		t.Fatalf("Sizes failed: %v", err)
	}

	want := []int{600, 437, 291, 194, 129, 86, 57, 38, 25, 17, 11, 7, 5, 3, 2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSizesStrictlyDecreasingToOne(t *testing.T) {
	steps := []float64{1.01, 1.1, 1.25, 1.5, 2, 2.5, 3, 10}

	for _, step := range steps {
		for start := 1; start <= 2048; start++ {
			sizes, err := Sizes(start, step)
			if err != nil {
				t.Fatalf("Sizes(%d, %v) failed: %v", start, step, err)
			}
			if sizes[0] != start {
				t.Fatalf("Sizes(%d, %v) should start at %d, got %d", start, step, start, sizes[0])
			}
			if last := sizes[len(sizes)-1]; last != 1 {
				t.Fatalf("Sizes(%d, %v) should end at 1, got %d", start, step, last)
			}
			for i := 1; i < len(sizes); i++ {
				if sizes[i] >= sizes[i-1] {
					t.Fatalf("Sizes(%d, %v) not strictly decreasing at %d: %v", start, step, i, sizes)
				}
			}
		}
	}
}

func TestSizesExactPowers(t *testing.T) {
	tests := []struct {
		start int
		step  float64
		want  []int
	}{
		{512, 2, []int{512, 256, 128, 64, 32, 16, 8, 4, 2, 1}},
		{243, 3, []int{243, 81, 27, 9, 3, 1}},
		{1000, 10, []int{1000, 100, 10, 1}},
		{1, 1.5, []int{1}},
		{2, 2, []int{2, 1}},
	}

	for _, tt := range tests {
		got, err := Sizes(tt.start, tt.step)
		if err != nil {
			t.Errorf("Sizes(%d, %v) failed: %v", tt.start, tt.step, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Sizes(%d, %v): expected %v, got %v", tt.start, tt.step, tt.want, got)
		}
	}
}

func TestExponent(t *testing.T) {
	tests := []struct {
		size int
		step float64
		want int
	}{
		{1, 1.5, 0},
		{2, 1.5, 2},
		{600, 1.5, 16},
		{437, 1.5, 15},
		{8, 2, 3},
		{9, 2, 4},
		{1000, 10, 3},
		// log_step lands within 1e-9 above 189902, but 1.0001^189902 is still short of size
		{176573990, 1.0001, 189903},
	}

	for _, tt := range tests {
		if got := Exponent(tt.size, tt.step); got != tt.want {
			t.Errorf("Exponent(%d, %v): expected %d, got %d", tt.size, tt.step, tt.want, got)
		}
	}
}

func TestExponentBrackets(t *testing.T) {
	steps := []float64{1.0001, 1.001, 1.01, 1.5, 2, 10}
	sizes := []int{1, 2, 3, 17, 437, 600, 4096, 1 << 20, 176573990}

	for _, step := range steps {
		for _, size := range sizes {
			k := Exponent(size, step)
			if hi := floor(math.Pow(step, float64(k))); hi < size {
				t.Errorf("Exponent(%d, %v) = %d: step^k floors to %d, below size", size, step, k, hi)
			}
			if lo := floor(math.Pow(step, float64(k-1))); lo >= size {
				t.Errorf("Exponent(%d, %v) = %d: step^(k-1) floors to %d, not below size", size, step, k, lo)
			}
		}
	}
}

func TestSizesInvalid(t *testing.T) {
	if _, err := Sizes(0, 1.5); errors.Cause(err) != ErrInvalidStart {
		t.Errorf("Expected ErrInvalidStart, got %v", err)
	}
	if _, err := Sizes(-3, 1.5); errors.Cause(err) != ErrInvalidStart {
		t.Errorf("Expected ErrInvalidStart, got %v", err)
	}

	for _, step := range []float64{1, 0.5, 0, -2, math.NaN(), math.Inf(1)} {
		if _, err := Sizes(600, step); errors.Cause(err) != ErrInvalidStep {
			t.Errorf("Step %v: expected ErrInvalidStep, got %v", step, err)
		}
	}
}
