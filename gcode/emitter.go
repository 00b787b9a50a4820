package gcode

import (
	"fmt"

	"github.com/1fifoto/cnc-pointillism/palette"
	"github.com/1fifoto/cnc-pointillism/sequence"
)

// Levels holds the Z heights of the painting motion itself. TravelZ is the
// clearance dabs retract to between cells; PrepaintZ is the slow-approach
// height just above the canvas; PaintZ is the dab depth.
type Levels struct {
	TravelZ   float64
	PrepaintZ float64
	PaintZ    float64
}

// DefaultLevels returns the Z heights the machine is tuned for.
func DefaultLevels() Levels {
	return Levels{
		TravelZ:   10,
		PrepaintZ: 2,
		PaintZ:    -1,
	}
}

const handleDwell = 0.3 // seconds held in the brush holder on pickup/return

// Emitter turns abstract brush actions into motion instructions. Every
// handler leaves the tool at a safe or travel height, and every handler
// starts with a horizontal move, so no X/Y motion ever happens with the
// brush down. X/Y and Z are never combined in one instruction.
type Emitter struct {
	program  *Program
	stations map[palette.Color]palette.Station
	levels   Levels
	dabDwell float64
}

// NewEmitter builds an emitter writing to program. The station map is the
// closed set of colors the emitter will accept; actions naming any other
// color are rejected.
func NewEmitter(program *Program, stations map[palette.Color]palette.Station, levels Levels, dabDwell float64) *Emitter {
	return &Emitter{
		program:  program,
		stations: stations,
		levels:   levels,
		dabDwell: dabDwell,
	}
}

// Program returns the instruction stream the emitter appends to.
func (e *Emitter) Program() *Program {
	return e.program
}

func (e *Emitter) station(c palette.Color) (palette.Station, error) {
	st, ok := e.stations[c]
	if !ok {
		return palette.Station{}, fmt.Errorf("gcode: no station for color %q", c)
	}
	return st, nil
}

// Pickup collects the brush for a color from its holder.
func (e *Emitter) Pickup(c palette.Color) error {
	st, err := e.station(c)
	if err != nil {
		return err
	}
	e.program.Comment("Pickup %s", c)
	e.holderCycle(st)
	return nil
}

// Return puts the brush for a color back in its holder.
func (e *Emitter) Return(c palette.Color) error {
	st, err := e.station(c)
	if err != nil {
		return err
	}
	e.program.Comment("Return %s", c)
	e.holderCycle(st)
	return nil
}

func (e *Emitter) holderCycle(st palette.Station) {
	e.program.RapidXY(st.X, st.Y)
	e.program.LinearZ(st.SafeZ)
	e.program.LinearZ(st.PickupZ)
	e.program.Dwell(handleDwell)
	e.program.LinearZ(st.SafeZ)
}

// Condition loads the brush: dip into the paint well, then blot off the
// excess. Re-dips use the identical motion.
func (e *Emitter) Condition(c palette.Color) error {
	st, err := e.station(c)
	if err != nil {
		return err
	}
	e.program.Comment("Dip %s", c)
	e.well(st.DipX, st.DipY, st.DipZ, st.SafeZ, st.DipDwell)
	e.well(st.BlotX, st.BlotY, st.BlotZ, st.SafeZ, st.BlotDwell)
	return nil
}

// Clean blots the brush without re-dipping, used before returning it.
func (e *Emitter) Clean(c palette.Color) error {
	st, err := e.station(c)
	if err != nil {
		return err
	}
	e.well(st.BlotX, st.BlotY, st.BlotZ, st.SafeZ, handleDwell)
	return nil
}

func (e *Emitter) well(x, y, z, safeZ, dwell float64) {
	e.program.RapidXY(x, y)
	e.program.LinearZ(safeZ)
	e.program.LinearZ(z)
	e.program.Dwell(dwell)
	e.program.LinearZ(safeZ)
}

// Dab paints one dot at the standard paint depth and dwell.
func (e *Emitter) Dab(x, y float64) {
	e.DabDepth(x, y, e.levels.PaintZ, e.dabDwell)
}

// DabDepth paints one dot at an explicit depth and dwell. The mixing-grid
// generator uses this to encode paint quantity as depth.
func (e *Emitter) DabDepth(x, y, z, dwell float64) {
	e.program.RapidXY(x, y)
	e.program.LinearZ(e.levels.PrepaintZ)
	e.program.LinearZ(z)
	e.program.Dwell(dwell)
	e.program.LinearZ(e.levels.TravelZ)
}

// Emit plays an action list through the emitter.
func (e *Emitter) Emit(actions []sequence.Action) error {
	for _, a := range actions {
		var err error
		switch a.Kind {
		case sequence.Pickup:
			err = e.Pickup(a.Color)
		case sequence.Condition, sequence.Redip:
			err = e.Condition(a.Color)
		case sequence.Dab:
			e.Dab(a.X, a.Y)
		case sequence.Clean:
			err = e.Clean(a.Color)
		case sequence.Return:
			err = e.Return(a.Color)
		default:
			err = fmt.Errorf("gcode: unknown action kind %d", a.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
