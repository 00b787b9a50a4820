/*
Package gcode builds the motion-control instruction stream for the painting
machine and implements the toolpath emitter that translates abstract brush
actions into physically safe motion.

The instruction vocabulary is deliberately small: comments, the unit/mode
preamble, rapid X/Y moves, feed-controlled Z moves, timed dwells, and the
program-end marker. Dwell durations are given in seconds and scaled into the
controller's native unit by TimeScale (the RichAuto B58 expects
milliseconds for G4 P).
*/
package gcode

import (
	"fmt"
	"io"
	"strings"
)

// Motion carries the feed rates and dwell-time scaling shared by every
// program this package emits.
type Motion struct {
	FeedTravel int     // X/Y rapid feed, mm/min
	FeedZ      int     // Z plunge feed, mm/min
	TimeScale  float64 // dwell seconds -> controller time unit
}

// DefaultMotion returns the feeds the machine is tuned for.
func DefaultMotion() Motion {
	return Motion{
		FeedTravel: 2500,
		FeedZ:      600,
		TimeScale:  1000,
	}
}

// Program is an append-only instruction stream. Instructions are plain text
// lines; once appended they are never rewritten.
type Program struct {
	motion Motion
	lines  []string
}

// NewProgram returns an empty program using the given motion settings.
func NewProgram(motion Motion) *Program {
	return &Program{motion: motion}
}

func (p *Program) append(line string) {
	p.lines = append(p.lines, line)
}

// Comment appends a free-text comment line.
func (p *Program) Comment(format string, args ...interface{}) {
	p.append("(" + fmt.Sprintf(format, args...) + ")")
}

// Preamble appends the unit and mode setup: millimeters, absolute
// coordinates, feed per minute.
func (p *Program) Preamble() {
	p.append("G21")
	p.append("G90")
	p.append("G94")
}

// RapidXY appends a horizontal move at the travel feed rate. Callers are
// responsible for being at a safe height first; the emitter below enforces
// that by construction.
func (p *Program) RapidXY(x, y float64) {
	p.append(fmt.Sprintf("G0 X%.3f Y%.3f F%d", x, y, p.motion.FeedTravel))
}

// LinearZ appends a vertical move at the Z feed rate.
func (p *Program) LinearZ(z float64) {
	p.append(fmt.Sprintf("G1 Z%.3f F%d", z, p.motion.FeedZ))
}

// RapidZ appends a vertical move with no feed word, used for the initial
// ascent and the postamble.
func (p *Program) RapidZ(z float64) {
	p.append(fmt.Sprintf("G0 Z%.3f", z))
}

// Dwell appends a timed pause of the given duration in seconds.
func (p *Program) Dwell(seconds float64) {
	p.append(fmt.Sprintf("G4 P%.0f", seconds*p.motion.TimeScale))
}

// End appends the postamble: ascend to the travel height, park at the
// machine origin and mark the program end.
func (p *Program) End(travelZ float64) {
	p.RapidZ(travelZ)
	p.append("G0 X0 Y0")
	p.append("M2")
}

// Len returns the number of instructions appended so far.
func (p *Program) Len() int {
	return len(p.lines)
}

// Lines returns the instructions appended so far. Callers must not mutate
// the returned slice.
func (p *Program) Lines() []string {
	return p.lines
}

// String renders the program, one instruction per line.
func (p *Program) String() string {
	return strings.Join(p.lines, "\n")
}

// WriteTo writes the rendered program to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}
