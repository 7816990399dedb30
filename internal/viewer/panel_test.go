package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turretsim/internal/aim"
	"turretsim/internal/physics"
)

func TestDragSlidersCoverEveryCoefficient(t *testing.T) {
	d := physics.DefaultDragConfig()
	rows := dragSliders(&d)
	require.Len(t, rows, 4)

	edited := map[*float32]string{}
	for _, row := range rows {
		assert.LessOrEqual(t, row.lo, *row.value, row.name)
		assert.GreaterOrEqual(t, row.hi, *row.value, row.name)
		edited[row.value] = row.name
	}
	assert.Contains(t, edited, &d.DragCoefficient)
	assert.Contains(t, edited, &d.AirDensity)
	assert.Contains(t, edited, &d.ReferenceArea)
	assert.Contains(t, edited, &d.Mass)

	// Rows write straight into the config
	for _, row := range rows {
		if row.name == "Air density" {
			*row.value = 1.1
		}
	}
	assert.Equal(t, float32(1.1), d.AirDensity)
}

func TestModeNames(t *testing.T) {
	assert.Equal(t, []string{"off", "pitch", "velocity"}, names(aimModes))
	assert.Equal(t, 2, indexOf(aimModes, aim.ModeVelocity))
	assert.Equal(t, 0, indexOf(dragModes, physics.Mode(99)), "unknown values select the first option")
}
