package pointillism

import (
	"image"

	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/mat"

	"github.com/1fifoto/cnc-pointillism/gcode"
	"github.com/1fifoto/cnc-pointillism/halftone"
	"github.com/1fifoto/cnc-pointillism/palette"
	"github.com/1fifoto/cnc-pointillism/sequence"
)

// Paint converts an image into a painting program on a cols-by-rows
// toolpath grid. The image is resampled to the grid resolution first, so
// an image pixel and a grid cell line up one to one from here on. The
// output is deterministic for identical inputs.
func (p *Painter) Paint(img image.Image, cols, rows int) (*gcode.Program, error) {
	if cols < 1 || rows < 1 {
		return nil, errEmptyGrid
	}
	cfg := p.config

	scaled := img
	if b := img.Bounds(); b.Dx() != cols || b.Dy() != rows {
		scaled = resize.Resize(uint(cols), uint(rows), img, resize.Lanczos3)
	}

	var cells map[palette.Color]map[sequence.Cell]struct{}
	if cfg.Palette == palette.Discrete {
		cells = p.classify(scaled, cols, rows)
	} else {
		cells = p.halftone(scaled, cols, rows)
	}

	program := gcode.NewProgram(cfg.Motion)
	program.Comment("Pointillism painting")
	program.Comment("Grid %dx%d, pitch %g mm", cols, rows, cfg.Canvas.Pitch)
	program.Preamble()
	program.RapidZ(cfg.Levels.TravelZ)

	emitter := gcode.NewEmitter(program, p.stations, cfg.Levels, cfg.DabDwell)
	geom := cfg.geometry()

	for _, color := range cfg.Palette.Colors() {
		set := cells[color]
		if len(set) == 0 {
			continue
		}
		p.logger.Printf("%s: %d dabs", color, len(set))
		program.Comment("=== %s %d dots ===", color, len(set))
		actions := sequence.Plan(color, set, cols, rows, geom, cfg.Redip)
		if err := emitter.Emit(actions); err != nil {
			return nil, err
		}
	}

	program.End(cfg.Levels.TravelZ)
	return program, nil
}

// classify assigns each cell to its nearest discrete paint, skipping cells
// bright enough to pass as unpainted canvas.
func (p *Painter) classify(img image.Image, cols, rows int) map[palette.Color]map[sequence.Cell]struct{} {
	cells := make(map[palette.Color]map[sequence.Cell]struct{})
	min := img.Bounds().Min
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, g, b := rgb8(img, min.X+col, min.Y+row)
			if palette.IsBackground(r, g, b, p.config.BackgroundThreshold) {
				continue
			}
			color := palette.Nearest(r, g, b)
			if cells[color] == nil {
				cells[color] = make(map[sequence.Cell]struct{})
			}
			cells[color][sequence.Cell{Col: col, Row: row}] = struct{}{}
		}
	}
	return cells
}

// halftone splits the image into four ink planes and halftones each one
// independently, so a single cell may collect up to four dabs.
func (p *Painter) halftone(img image.Image, cols, rows int) map[palette.Color]map[sequence.Cell]struct{} {
	planes := map[palette.Color]*mat.Dense{
		palette.Cyan:    mat.NewDense(rows, cols, nil),
		palette.Magenta: mat.NewDense(rows, cols, nil),
		palette.Yellow:  mat.NewDense(rows, cols, nil),
		palette.Black:   mat.NewDense(rows, cols, nil),
	}

	min := img.Bounds().Min
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, g, b := rgb8(img, min.X+col, min.Y+row)
			c, m, y, k := halftone.Split(r, g, b)
			planes[palette.Cyan].Set(row, col, c)
			planes[palette.Magenta].Set(row, col, m)
			planes[palette.Yellow].Set(row, col, y)
			planes[palette.Black].Set(row, col, k)
		}
	}

	cells := make(map[palette.Color]map[sequence.Cell]struct{})
	for color, plane := range planes {
		binary := halftone.Dither(plane)
		set := make(map[sequence.Cell]struct{})
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				if binary.At(row, col) == 1 {
					set[sequence.Cell{Col: col, Row: row}] = struct{}{}
				}
			}
		}
		cells[color] = set
	}
	return cells
}

func rgb8(img image.Image, x, y int) (r, g, b uint8) {
	r16, g16, b16, _ := img.At(x, y).RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}
