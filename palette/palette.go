/*
Package palette models the paint colors available to the machine and the
physical station associated with each one.

Two palette modes exist: a six-color discrete palette where every grid cell
is classified to its single nearest color, and a four-color process (CMYK)
palette where each ink channel is halftoned independently. The color order
within a mode is the paint order and never changes during a run.
*/
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color identifies one paint color by name.
type Color string

const (
	Black   Color = "black"
	Blue    Color = "blue"
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	White   Color = "white"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
)

// Mode selects which palette a run paints with.
type Mode int

const (
	// Discrete is the six-color palette; every cell gets at most one dab.
	Discrete Mode = iota
	// Process is the CMYK palette; every cell gets zero to four dabs.
	Process
)

var modeNames = map[Mode]string{
	Discrete: "rgb6",
	Process:  "cmyk",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a palette name from the command line to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "rgb6":
		return Discrete, nil
	case "cmyk":
		return Process, nil
	}
	return 0, fmt.Errorf("palette: unknown palette %q", s)
}

var (
	discreteOrder = []Color{Black, Blue, Red, Green, Yellow, White}
	processOrder  = []Color{Yellow, Magenta, Cyan, Black}
)

// Colors returns the paint order for the mode. Callers must not mutate the
// returned slice.
func (m Mode) Colors() []Color {
	if m == Process {
		return processOrder
	}
	return discreteOrder
}

// reference holds the nominal RGB value of each discrete paint, used only
// for nearest-color classification. Iteration order doubles as the
// tie-break order.
type reference struct {
	name Color
	rgb  colorful.Color
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var references = []reference{
	{Red, mustHex("#dc143c")},
	{Green, mustHex("#228b22")},
	{Blue, mustHex("#1e90ff")},
	{Yellow, mustHex("#ffd700")},
	{Black, mustHex("#000000")},
	{White, mustHex("#ffffff")},
}

// Reference returns the nominal RGB of a discrete paint color.
func Reference(c Color) (colorful.Color, bool) {
	for _, ref := range references {
		if ref.name == c {
			return ref.rgb, true
		}
	}
	return colorful.Color{}, false
}

// Nearest classifies an 8-bit RGB sample to the discrete paint with the
// smallest squared Euclidean distance in RGB space. This is closest-point
// matching, not a perceptual color model; ties go to the earliest reference.
func Nearest(r, g, b uint8) Color {
	best := references[0].name
	bestD2 := 1e18
	for _, ref := range references {
		dr := float64(r) - ref.rgb.R*255
		dg := float64(g) - ref.rgb.G*255
		db := float64(b) - ref.rgb.B*255
		d2 := dr*dr + dg*dg + db*db
		if d2 < bestD2 {
			best, bestD2 = ref.name, d2
		}
	}
	return best
}

// IsBackground reports whether a sample is bright enough in all three
// channels to be left unpainted. Only the discrete mode consults this;
// halftoning lets bright cells dither down to zero ink on their own.
func IsBackground(r, g, b, threshold uint8) bool {
	return r >= threshold && g >= threshold && b >= threshold
}
