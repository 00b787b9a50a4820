/*
Package halftone splits RGB samples into subtractive ink fractions and
halftones each ink plane with classic four-neighbor error diffusion.
*/
package halftone

import "gonum.org/v1/gonum/mat"

// Split converts an 8-bit RGB sample into CMYK ink fractions, each in
// [0,1]. A fully black sample saturates the K channel; the chromatic
// fractions are defined as zero in that case so the conversion stays total.
func Split(r, g, b uint8) (c, m, y, k float64) {
	fr := float64(r) / 255
	fg := float64(g) / 255
	fb := float64(b) / 255

	max := fr
	if fg > max {
		max = fg
	}
	if fb > max {
		max = fb
	}

	k = 1 - max
	if k >= 1 {
		return 0, 0, 0, 1
	}
	c = (1 - fr - k) / (1 - k)
	m = (1 - fg - k) / (1 - k)
	y = (1 - fb - k) / (1 - k)
	return c, m, y, k
}

// Dither halftones a plane of ink fractions into a binary plane of 0/1
// values using Floyd-Steinberg error diffusion: cells are visited in
// row-major order, thresholded at 0.5, and the rounding error is pushed to
// the unvisited neighbors with weights 7/16 right, 3/16 below-left, 5/16
// below and 1/16 below-right. Neighbors outside the plane are dropped.
// The input plane is not modified.
func Dither(plane *mat.Dense) *mat.Dense {
	rows, cols := plane.Dims()
	work := mat.DenseCopyOf(plane)
	out := mat.NewDense(rows, cols, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			old := work.At(y, x)
			var quantized float64
			if old >= 0.5 {
				quantized = 1
			}
			out.Set(y, x, quantized)

			err := old - quantized
			if x+1 < cols {
				work.Set(y, x+1, work.At(y, x+1)+err*7/16)
			}
			if y+1 < rows && x > 0 {
				work.Set(y+1, x-1, work.At(y+1, x-1)+err*3/16)
			}
			if y+1 < rows {
				work.Set(y+1, x, work.At(y+1, x)+err*5/16)
			}
			if y+1 < rows && x+1 < cols {
				work.Set(y+1, x+1, work.At(y+1, x+1)+err*1/16)
			}
		}
	}
	return out
}
