package gcode

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1fifoto/cnc-pointillism/palette"
	"github.com/1fifoto/cnc-pointillism/sequence"
)

func testEmitter(t *testing.T, mode palette.Mode) (*Emitter, *Program) {
	t.Helper()
	stations, err := palette.DefaultLayout().Stations(mode)
	require.NoError(t, err)

	program := NewProgram(DefaultMotion())
	program.RapidZ(DefaultLevels().TravelZ)
	return NewEmitter(program, stations, DefaultLevels(), 0.05), program
}

// assertSafeHorizontalMoves replays the program's Z state and checks that
// the tool is at or above minZ whenever a horizontal move is issued.
func assertSafeHorizontalMoves(t *testing.T, lines []string, minZ float64) {
	t.Helper()
	z := 0.0
	zKnown := false
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "G0 Z"):
			_, err := fmt.Sscanf(line, "G0 Z%f", &z)
			require.NoError(t, err, "line %d: %s", i, line)
			zKnown = true
		case strings.HasPrefix(line, "G1 Z"):
			_, err := fmt.Sscanf(line, "G1 Z%f", &z)
			require.NoError(t, err, "line %d: %s", i, line)
			zKnown = true
		case strings.HasPrefix(line, "G0 X"):
			require.True(t, zKnown, "line %d: horizontal move before any Z move", i)
			assert.GreaterOrEqual(t, z, minZ, "line %d: horizontal move below clearance: %s", i, line)
		}
	}
}

func TestEmitterPickupMotion(t *testing.T) {
	e, p := testEmitter(t, palette.Discrete)
	require.NoError(t, e.Pickup(palette.Black))

	want := []string{
		"G0 Z10.000",
		"(Pickup black)",
		"G0 X0.000 Y400.000 F2500",
		"G1 Z15.000 F600",
		"G1 Z-5.000 F600",
		"G4 P300",
		"G1 Z15.000 F600",
	}
	assert.Equal(t, want, p.Lines())
}

func TestEmitterConditionMotion(t *testing.T) {
	e, p := testEmitter(t, palette.Discrete)
	require.NoError(t, e.Condition(palette.Black))

	want := []string{
		"G0 Z10.000",
		"(Dip black)",
		"G0 X0.000 Y400.000 F2500",
		"G1 Z15.000 F600",
		"G1 Z-3.000 F600",
		"G4 P1000",
		"G1 Z15.000 F600",
		"G0 X0.000 Y460.000 F2500",
		"G1 Z15.000 F600",
		"G1 Z-2.000 F600",
		"G4 P500",
		"G1 Z15.000 F600",
	}
	assert.Equal(t, want, p.Lines())
}

func TestEmitterDabMotion(t *testing.T) {
	e, p := testEmitter(t, palette.Discrete)
	e.Dab(12, 34)

	want := []string{
		"G0 Z10.000",
		"G0 X12.000 Y34.000 F2500",
		"G1 Z2.000 F600",
		"G1 Z-1.000 F600",
		"G4 P50",
		"G1 Z10.000 F600",
	}
	assert.Equal(t, want, p.Lines())
}

func TestEmitterRejectsUnknownColor(t *testing.T) {
	e, _ := testEmitter(t, palette.Discrete)
	assert.Error(t, e.Pickup(palette.Cyan))
	assert.Error(t, e.Condition(palette.Magenta))
	assert.Error(t, e.Return(palette.Cyan))
}

func TestEmitterSafeHeightInvariant(t *testing.T) {
	e, p := testEmitter(t, palette.Discrete)

	cells := map[sequence.Cell]struct{}{
		{Col: 0, Row: 0}: {}, {Col: 5, Row: 0}: {},
		{Col: 3, Row: 1}: {}, {Col: 0, Row: 2}: {},
	}
	actions := sequence.Plan(palette.Red, cells, 6, 3, sequence.Geometry{Pitch: 3}, sequence.Policy{MaxDabs: 2, MaxTravel: 10, CleanAtEnd: true})
	require.NoError(t, e.Emit(actions))
	p.End(DefaultLevels().TravelZ)

	// Every horizontal move must happen at or above the travel height.
	assertSafeHorizontalMoves(t, p.Lines(), DefaultLevels().TravelZ)
}

func TestEmitterEmitMapsRedipToCondition(t *testing.T) {
	e, p := testEmitter(t, palette.Discrete)
	require.NoError(t, e.Emit([]sequence.Action{{Kind: sequence.Redip, Color: palette.Blue}}))
	assert.Contains(t, p.Lines(), "(Dip blue)")
}
