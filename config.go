package pointillism

import (
	"errors"
	"fmt"
	"math"

	"github.com/1fifoto/cnc-pointillism/gcode"
	"github.com/1fifoto/cnc-pointillism/palette"
	"github.com/1fifoto/cnc-pointillism/sequence"
)

var (
	errNonPositivePitch = errors.New("pointillism: cell pitch must be positive")
	errEmptyGrid        = errors.New("pointillism: grid resolution is zero in at least one dimension")
)

// Canvas places the toolpath grid on the machine bed.
type Canvas struct {
	OriginX, OriginY float64
	Margin           float64
	Pitch            float64 // distance between neighboring dab centers, mm
}

// Config is the full, immutable parameter set for one Painter. Build it
// from DefaultConfig and adjust; New validates everything up front so the
// pipeline itself never has to.
type Config struct {
	Palette palette.Mode
	Layout  palette.Layout
	Motion  gcode.Motion
	Levels  gcode.Levels

	Canvas Canvas
	Redip  sequence.Policy

	DabDwell float64 // seconds per dab

	// BackgroundThreshold is the per-channel brightness at or above which a
	// discrete-mode cell is left unpainted.
	BackgroundThreshold uint8
}

// DefaultConfig returns the machine's current tuning.
func DefaultConfig() Config {
	return Config{
		Palette: palette.Discrete,
		Layout:  palette.DefaultLayout(),
		Motion:  gcode.DefaultMotion(),
		Levels:  gcode.DefaultLevels(),
		Canvas: Canvas{
			Pitch: 3.0,
		},
		Redip: sequence.Policy{
			MaxDabs:    120,
			MaxTravel:  180,
			CleanAtEnd: true,
		},
		DabDwell:            0.05,
		BackgroundThreshold: 240,
	}
}

func (c Config) validate() error {
	if c.Canvas.Pitch <= 0 {
		return errNonPositivePitch
	}
	if c.Palette != palette.Discrete && c.Palette != palette.Process {
		return fmt.Errorf("pointillism: unknown palette mode %v", c.Palette)
	}
	if c.Levels.TravelZ < c.Levels.PaintZ || c.Levels.TravelZ < c.Levels.PrepaintZ {
		return fmt.Errorf("pointillism: travel height %.3f below painting heights", c.Levels.TravelZ)
	}
	return nil
}

func (c Config) geometry() sequence.Geometry {
	return sequence.Geometry{
		OriginX: c.Canvas.OriginX,
		OriginY: c.Canvas.OriginY,
		Margin:  c.Canvas.Margin,
		Pitch:   c.Canvas.Pitch,
	}
}

// GridSize derives the toolpath grid resolution from the physical canvas
// size. The margin is subtracted from both edges before dividing by the
// cell pitch. A canvas too small to hold even one cell is a configuration
// error, not a silent one-cell grid.
func GridSize(widthMM, heightMM, marginMM, pitchMM float64) (cols, rows int, err error) {
	if pitchMM <= 0 {
		return 0, 0, errNonPositivePitch
	}
	usableW := widthMM - 2*marginMM
	usableH := heightMM - 2*marginMM
	cols = int(math.Round(usableW / pitchMM))
	rows = int(math.Round(usableH / pitchMM))
	if cols < 1 || rows < 1 {
		return 0, 0, errEmptyGrid
	}
	return cols, rows, nil
}
