package halftone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSplit(t *testing.T) {
	c, m, y, k := Split(255, 255, 255)
	assert.Equal(t, 0.0, c)
	assert.Equal(t, 0.0, m)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 0.0, k)

	// Full black saturates K; the chromatic fractions are defined as zero.
	c, m, y, k = Split(0, 0, 0)
	assert.Equal(t, 0.0, c)
	assert.Equal(t, 0.0, m)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, 1.0, k)

	c, m, y, k = Split(255, 0, 0)
	assert.InDelta(t, 0.0, c, 1e-9)
	assert.InDelta(t, 1.0, m, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)
	assert.InDelta(t, 0.0, k, 1e-9)

	c, m, y, k = Split(0, 255, 255)
	assert.InDelta(t, 1.0, c, 1e-9)
	assert.InDelta(t, 0.0, m, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
	assert.InDelta(t, 0.0, k, 1e-9)
}

func TestSplitMidGray(t *testing.T) {
	c, m, y, k := Split(128, 128, 128)
	assert.InDelta(t, 0.0, c, 1e-9)
	assert.InDelta(t, 0.0, m, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
	assert.InDelta(t, 1-128.0/255, k, 1e-9)
}

func constantPlane(rows, cols int, v float64) *mat.Dense {
	p := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p.Set(y, x, v)
		}
	}
	return p
}

func onesCount(p *mat.Dense) int {
	rows, cols := p.Dims()
	n := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if p.At(y, x) == 1 {
				n++
			}
		}
	}
	return n
}

// Error diffusion must conserve coverage: the ones-count of a halftoned
// constant plane stays close to value*cells, losing only the error that
// falls off the bottom and right edges.
func TestDitherConservesCoverage(t *testing.T) {
	out := Dither(constantPlane(10, 10, 0.3))
	assert.InDelta(t, 30, onesCount(out), 5)

	out = Dither(constantPlane(20, 20, 0.5))
	assert.InDelta(t, 200, onesCount(out), 10)
}

func TestDitherExtremes(t *testing.T) {
	assert.Equal(t, 0, onesCount(Dither(constantPlane(8, 8, 0))))
	assert.Equal(t, 64, onesCount(Dither(constantPlane(8, 8, 1))))
}

func TestDitherThreshold(t *testing.T) {
	out := Dither(mat.NewDense(1, 1, []float64{0.6}))
	assert.Equal(t, 1.0, out.At(0, 0))

	out = Dither(mat.NewDense(1, 1, []float64{0.4}))
	assert.Equal(t, 0.0, out.At(0, 0))

	// Exactly at threshold rounds up.
	out = Dither(mat.NewDense(1, 1, []float64{0.5}))
	assert.Equal(t, 1.0, out.At(0, 0))
}

// The first row exercises only the rightward 7/16 weight, so its pattern
// is fully determined by the kernel. 0.4: emits 0, error accumulates right
// until the running value crosses 0.5.
func TestDitherKernelFirstRow(t *testing.T) {
	out := Dither(mat.NewDense(1, 6, []float64{0.4, 0.4, 0.4, 0.4, 0.4, 0.4}))

	// cell0: 0.4 -> 0, err 0.4, cell1 += 0.175
	// cell1: 0.575 -> 1, err -0.425, cell2 -= 0.185..
	want := []float64{0, 1, 0, 0, 1, 0}
	for i, w := range want {
		assert.Equal(t, w, out.At(0, i), "cell %d", i)
	}
}

func TestDitherDoesNotMutateInput(t *testing.T) {
	in := constantPlane(5, 5, 0.3)
	Dither(in)
	rows, cols := in.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			assert.Equal(t, 0.3, in.At(y, x))
		}
	}
}

func TestDitherDeterministic(t *testing.T) {
	a := Dither(constantPlane(12, 9, 0.37))
	b := Dither(constantPlane(12, 9, 0.37))
	assert.True(t, mat.Equal(a, b))
}
