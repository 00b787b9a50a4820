package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutStations(t *testing.T) {
	stations, err := DefaultLayout().Stations(Discrete)
	require.NoError(t, err)
	require.Len(t, stations, 6)

	// Stations step 100mm in X in paint order.
	black := stations[Black]
	assert.Equal(t, 0.0, black.X)
	assert.Equal(t, 400.0, black.Y)

	red := stations[Red] // third color in discrete order
	assert.Equal(t, 200.0, red.X)
	assert.Equal(t, 400.0, red.Y)

	// Dip and blot positions are offsets from the pickup point.
	assert.Equal(t, red.X, red.DipX)
	assert.Equal(t, red.Y, red.DipY)
	assert.Equal(t, -3.0, red.DipZ)
	assert.Equal(t, red.X, red.BlotX)
	assert.Equal(t, red.Y+60, red.BlotY)
	assert.Equal(t, -2.0, red.BlotZ)

	assert.Equal(t, 1.0, red.DipDwell)
	assert.Equal(t, 0.5, red.BlotDwell)
}

func TestLayoutStationsProcess(t *testing.T) {
	stations, err := DefaultLayout().Stations(Process)
	require.NoError(t, err)
	require.Len(t, stations, 4)

	// Paint order is yellow, magenta, cyan, black.
	assert.Equal(t, 0.0, stations[Yellow].X)
	assert.Equal(t, 300.0, stations[Black].X)
}

func TestLayoutClearanceInvariant(t *testing.T) {
	l := DefaultLayout()
	l.Dip.Z = l.SafeZ // dip at safe height would drag the brush
	_, err := l.Stations(Discrete)
	assert.Error(t, err)

	l = DefaultLayout()
	l.PickupZ = l.SafeZ + 1
	_, err = l.Stations(Discrete)
	assert.Error(t, err)
}
