package palette

import "fmt"

// Station is the physical location set serving one paint color: where the
// brush is picked up and returned, where it is dipped into paint, and where
// it is blotted. All coordinates are machine millimeters; depths are Z
// values below the safe height.
type Station struct {
	Name Color

	X, Y    float64
	PickupZ float64
	SafeZ   float64

	DipX, DipY, DipZ    float64
	BlotX, BlotY, BlotZ float64

	DipDwell  float64 // seconds
	BlotDwell float64 // seconds
}

// Offset is a displacement from a station's pickup point.
type Offset struct {
	X, Y, Z float64
}

// Layout describes where the stations sit on the machine bed. Stations are
// placed on a line starting at (OriginX, OriginY) and stepping by
// (StepX, StepY) per color, in palette order.
type Layout struct {
	OriginX, OriginY float64
	StepX, StepY     float64

	Dip  Offset
	Blot Offset

	PickupZ float64
	SafeZ   float64

	DipDwell  float64
	BlotDwell float64
}

// Stations builds the station map for a palette mode and checks the
// clearance invariant: the safe height must sit strictly above every depth
// the brush is driven to, otherwise a horizontal move could drag the brush
// through a paint well.
func (l Layout) Stations(m Mode) (map[Color]Station, error) {
	for _, depth := range []struct {
		name string
		z    float64
	}{
		{"pickup", l.PickupZ},
		{"dip", l.Dip.Z},
		{"blot", l.Blot.Z},
	} {
		if depth.z >= l.SafeZ {
			return nil, fmt.Errorf("palette: %s depth %.3f not below safe height %.3f", depth.name, depth.z, l.SafeZ)
		}
	}

	stations := make(map[Color]Station)
	for i, color := range m.Colors() {
		x := l.OriginX + float64(i)*l.StepX
		y := l.OriginY + float64(i)*l.StepY
		stations[color] = Station{
			Name:      color,
			X:         x,
			Y:         y,
			PickupZ:   l.PickupZ,
			SafeZ:     l.SafeZ,
			DipX:      x + l.Dip.X,
			DipY:      y + l.Dip.Y,
			DipZ:      l.Dip.Z,
			BlotX:     x + l.Blot.X,
			BlotY:     y + l.Blot.Y,
			BlotZ:     l.Blot.Z,
			DipDwell:  l.DipDwell,
			BlotDwell: l.BlotDwell,
		}
	}
	return stations, nil
}

// DefaultLayout matches the station grid the machine is currently set up
// with: six wells along the back edge, 100 mm apart.
func DefaultLayout() Layout {
	return Layout{
		OriginX:   0,
		OriginY:   400,
		StepX:     100,
		StepY:     0,
		Dip:       Offset{X: 0, Y: 0, Z: -3},
		Blot:      Offset{X: 0, Y: 60, Z: -2},
		PickupZ:   -5,
		SafeZ:     15,
		DipDwell:  1.0,
		BlotDwell: 0.5,
	}
}
