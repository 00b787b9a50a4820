package pointillism

import "github.com/1fifoto/cnc-pointillism/gcode"

// SwatchOptions lays out the calibration swatch: one column of dots per
// palette color, with the dab dwell increasing down the column so the
// painted dot sizes can be compared against dwell time.
type SwatchOptions struct {
	OriginX, OriginY float64
	Pitch            float64 // spacing between dots, both axes
	Dots             int     // dots per color
	DwellBase        float64 // dwell of the first dot, seconds
	DwellStep        float64 // dwell increase per dot, seconds
}

// DefaultSwatchOptions returns the usual calibration layout.
func DefaultSwatchOptions() SwatchOptions {
	return SwatchOptions{
		Pitch:     20,
		Dots:      5,
		DwellBase: 0.05,
		DwellStep: 0.05,
	}
}

// Swatch generates the calibration swatch program. Every palette color gets
// a pickup/condition/return cycle around its dot column; there is no image
// analysis and no re-dip accounting.
func (p *Painter) Swatch(opts SwatchOptions) (*gcode.Program, error) {
	if opts.Pitch <= 0 {
		return nil, errNonPositivePitch
	}
	cfg := p.config

	program := gcode.NewProgram(cfg.Motion)
	program.Comment("Calibration swatch for %s", cfg.Palette)
	program.Preamble()
	program.RapidZ(cfg.Levels.TravelZ)

	emitter := gcode.NewEmitter(program, p.stations, cfg.Levels, cfg.DabDwell)

	for ci, color := range cfg.Palette.Colors() {
		if err := emitter.Pickup(color); err != nil {
			return nil, err
		}
		if err := emitter.Condition(color); err != nil {
			return nil, err
		}
		for j := 0; j < opts.Dots; j++ {
			x := opts.OriginX + float64(ci)*opts.Pitch
			y := opts.OriginY + float64(j)*opts.Pitch
			dwell := opts.DwellBase + float64(j)*opts.DwellStep
			program.Comment("Color %s, dot %d, dwell %.2fs", color, j+1, dwell)
			emitter.DabDepth(x, y, cfg.Levels.PaintZ, dwell)
		}
		if err := emitter.Return(color); err != nil {
			return nil, err
		}
	}

	program.End(cfg.Levels.TravelZ)
	return program, nil
}
