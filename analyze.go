package pointillism

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/1fifoto/cnc-pointillism/palette"
)

// PaletteEntry is one color extracted from an input image, with the share
// of pixels it covers and the machine paint it would classify to.
type PaletteEntry struct {
	Hex     string
	Share   float64
	Nearest palette.Color
}

// Report summarizes how an input image maps onto the machine palette.
type Report struct {
	Dominant string
	Entries  []PaletteEntry
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dominant color: %s\n", r.Dominant)
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s  %5.1f%%  -> %s\n", e.Hex, e.Share*100, e.Nearest)
	}
	return b.String()
}

// Analyze extracts a median-cut palette of up to maxColors from the image
// and reports, per extracted color, its pixel share and nearest machine
// paint. Useful for judging whether the discrete or process palette will
// reproduce an image better before committing paint to it.
func (p *Painter) Analyze(img image.Image, maxColors int) (*Report, error) {
	if maxColors < 1 {
		return nil, errors.New("pointillism: palette size must be at least 1")
	}

	q := quantize.MedianCutQuantizer{}
	extracted := q.Quantize(make(color.Palette, 0, maxColors), img)
	if len(extracted) == 0 {
		return nil, errors.New("pointillism: image has no colors to extract")
	}

	counts := make([]int, len(extracted))
	bounds := img.Bounds()
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			counts[extracted.Index(img.At(x, y))]++
			total++
		}
	}
	if total == 0 {
		return nil, errors.New("pointillism: image is empty")
	}

	report := &Report{
		Dominant: dominantcolor.Hex(dominantcolor.Find(img)),
	}
	for i, c := range extracted {
		r16, g16, b16, _ := c.RGBA()
		r8, g8, b8 := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)
		hex := colorful.Color{
			R: float64(r8) / 255,
			G: float64(g8) / 255,
			B: float64(b8) / 255,
		}.Hex()
		report.Entries = append(report.Entries, PaletteEntry{
			Hex:     hex,
			Share:   float64(counts[i]) / float64(total),
			Nearest: palette.Nearest(r8, g8, b8),
		})
	}
	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Share > report.Entries[j].Share
	})
	return report, nil
}
