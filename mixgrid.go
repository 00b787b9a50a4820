package pointillism

import (
	"github.com/1fifoto/cnc-pointillism/gcode"
	"github.com/1fifoto/cnc-pointillism/palette"
)

// MixGridOptions lays out the paint-mixing test grid: a grid of clusters,
// each cluster three triangle-vertex dots plus one center dot. Two colors
// sweep their paint quantity across the grid's X and Y, the other two stay
// fixed, and quantity is encoded as dab depth.
type MixGridOptions struct {
	OriginX, OriginY float64
	Pitch            float64 // spacing between cluster centers
	Cols, Rows       int

	// Depth range paint quantity is mapped into; ZMin is the depth at
	// quantity 0, ZMax at quantity 1.
	ZMin, ZMax float64
}

// DefaultMixGridOptions returns the usual mixing-grid layout.
func DefaultMixGridOptions() MixGridOptions {
	return MixGridOptions{
		Pitch: 30,
		Cols:  5,
		Rows:  5,
		ZMin:  -0.5,
		ZMax:  -2.0,
	}
}

const mixVertexRadius = 8.0 // mm, triangle circumradius within a cluster

var mixVertexOffsets = [3][2]float64{
	{0, -mixVertexRadius},
	{-mixVertexRadius * 0.866, mixVertexRadius / 2},
	{mixVertexRadius * 0.866, mixVertexRadius / 2},
}

// mixColors returns the four colors a mode mixes with: the first sweeps
// with X, the second with Y, the third is fixed, the fourth paints the
// cluster center.
func mixColors(m palette.Mode) [4]palette.Color {
	if m == palette.Process {
		return [4]palette.Color{palette.Cyan, palette.Magenta, palette.Yellow, palette.Black}
	}
	return [4]palette.Color{palette.Red, palette.Yellow, palette.Blue, palette.White}
}

// mixValues returns the paint quantity of each mixing color for the
// cluster at grid fractions (tx, ty).
func mixValues(m palette.Mode, tx, ty float64) [4]float64 {
	if m == palette.Process {
		return [4]float64{tx, ty, 0.5, 0}
	}
	return [4]float64{tx, ty, 0.5, 1}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MixGrid generates the paint-mixing grid program. A zero paint quantity
// skips the dot entirely; every painted dot is a full pickup, condition,
// dab-at-depth, return cycle so each color's load stays independent.
func (p *Painter) MixGrid(opts MixGridOptions) (*gcode.Program, error) {
	if opts.Pitch <= 0 {
		return nil, errNonPositivePitch
	}
	if opts.Cols < 1 || opts.Rows < 1 {
		return nil, errEmptyGrid
	}
	cfg := p.config
	colors := mixColors(cfg.Palette)

	program := gcode.NewProgram(cfg.Motion)
	program.Comment("Paint mixing grid for %s", cfg.Palette)
	program.Preamble()
	program.RapidZ(cfg.Levels.TravelZ)

	emitter := gcode.NewEmitter(program, p.stations, cfg.Levels, cfg.DabDwell)

	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			baseX := opts.OriginX + float64(col)*opts.Pitch
			baseY := opts.OriginY + float64(row)*opts.Pitch

			var tx, ty float64
			if opts.Cols > 1 {
				tx = float64(col) / float64(opts.Cols-1)
			}
			if opts.Rows > 1 {
				ty = float64(row) / float64(opts.Rows-1)
			}
			values := mixValues(cfg.Palette, tx, ty)

			program.Comment("Cluster row %d col %d", row, col)

			for i := 0; i < 4; i++ {
				value := values[i]
				if value <= 0 {
					continue
				}
				x, y := baseX, baseY
				if i < 3 {
					x += mixVertexOffsets[i][0]
					y += mixVertexOffsets[i][1]
				}
				z := lerp(opts.ZMin, opts.ZMax, value)

				if err := emitter.Pickup(colors[i]); err != nil {
					return nil, err
				}
				if err := emitter.Condition(colors[i]); err != nil {
					return nil, err
				}
				program.Comment(" %s value=%.2f z=%.2f ", colors[i], value, z)
				emitter.DabDepth(x, y, z, 0.1)
				if err := emitter.Return(colors[i]); err != nil {
					return nil, err
				}
			}
		}
	}

	program.End(cfg.Levels.TravelZ)
	return program, nil
}
