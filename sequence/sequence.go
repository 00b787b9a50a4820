/*
Package sequence orders the dabs assigned to one color into the abstract
action list a toolpath emitter consumes: pick up the brush, condition it,
dab every cell in serpentine order with re-dips inserted as the brush runs
dry, then clean and return the brush.
*/
package sequence

import (
	"math"

	"github.com/1fifoto/cnc-pointillism/palette"
)

// Cell addresses one toolpath grid cell.
type Cell struct {
	Col, Row int
}

// Geometry maps grid cells to machine coordinates. The cell pitch is a
// physical distance; the source image is resampled to the grid resolution
// before any cell exists, so pitch is independent of image pixels.
type Geometry struct {
	OriginX, OriginY float64
	Margin           float64
	Pitch            float64
}

// XY returns the machine coordinates of a cell's dab point.
func (g Geometry) XY(c Cell) (x, y float64) {
	return g.OriginX + g.Margin + float64(c.Col)*g.Pitch,
		g.OriginY + g.Margin + float64(c.Row)*g.Pitch
}

// Policy controls when the brush is re-conditioned mid-color.
type Policy struct {
	// MaxDabs forces a re-dip once this many dabs have been painted since
	// the last conditioning.
	MaxDabs int
	// MaxTravel forces a re-dip once the brush has moved this many
	// millimeters between dabs since the last conditioning. Zero disables
	// the travel trigger.
	MaxTravel float64
	// CleanAtEnd adds a blot-only conditioning pass before the brush is
	// returned.
	CleanAtEnd bool
}

// Kind discriminates Action values.
type Kind int

const (
	Pickup Kind = iota
	Condition
	Dab
	Redip
	Clean
	Return
)

// Action is one abstract unit of toolpath work. Dab actions carry machine
// coordinates; every action carries the color it serves.
type Action struct {
	Kind  Kind
	Color palette.Color
	X, Y  float64
}

// Serpentine returns every cell of a cols-by-rows grid in boustrophedon
// order: rows ascend, even rows run left to right, odd rows right to left.
func Serpentine(cols, rows int) []Cell {
	order := make([]Cell, 0, cols*rows)
	for row := 0; row < rows; row++ {
		if row%2 == 0 {
			for col := 0; col < cols; col++ {
				order = append(order, Cell{col, row})
			}
		} else {
			for col := cols - 1; col >= 0; col-- {
				order = append(order, Cell{col, row})
			}
		}
	}
	return order
}

// Plan builds the action list for one color. Cells not present in the set
// are skipped; a color with no cells produces no actions at all, so unused
// colors never cost a pickup/return cycle.
//
// Travel is accumulated between consecutive dab positions before each dab
// is emitted; the first dab after conditioning a fresh brush contributes no
// distance ahead of itself.
func Plan(color palette.Color, cells map[Cell]struct{}, cols, rows int, geom Geometry, policy Policy) []Action {
	if len(cells) == 0 {
		return nil
	}

	actions := []Action{
		{Kind: Pickup, Color: color},
		{Kind: Condition, Color: color},
	}

	dabsSince := 0
	travelSince := 0.0
	havePrev := false
	var prevX, prevY float64

	for _, cell := range Serpentine(cols, rows) {
		if _, ok := cells[cell]; !ok {
			continue
		}
		x, y := geom.XY(cell)
		if havePrev {
			travelSince += math.Hypot(x-prevX, y-prevY)
		}
		if dabsSince >= policy.MaxDabs || (policy.MaxTravel > 0 && travelSince >= policy.MaxTravel) {
			actions = append(actions, Action{Kind: Redip, Color: color})
			dabsSince = 0
			travelSince = 0
		}
		actions = append(actions, Action{Kind: Dab, Color: color, X: x, Y: y})
		dabsSince++
		prevX, prevY = x, y
		havePrev = true
	}

	if policy.CleanAtEnd {
		actions = append(actions, Action{Kind: Clean, Color: color})
	}
	actions = append(actions, Action{Kind: Return, Color: color})
	return actions
}
