package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateConstantGravity(t *testing.T) {
	start := rl.Vector3{X: 3, Y: -2, Z: 10}

	for _, dt := range []float32{0.001, 1.0 / 60, 0.1, 0.5} {
		v, disp := Integrate(start, dt, DefaultDragConfig(), ModeNone)

		assert.InDelta(t, start.Z-Gravity*dt, v.Z, 1e-4, "dt=%v", dt)
		assert.Equal(t, start.X, v.X)
		assert.Equal(t, start.Y, v.Y)
		assert.InDelta(t, v.X*dt, disp.X, 1e-6)
		assert.InDelta(t, v.Z*dt, disp.Z, 1e-6)
	}
}

func TestIntegrateFromRest(t *testing.T) {
	v, disp := Integrate(rl.Vector3{}, 0.1, DefaultDragConfig(), ModeNone)

	assert.InDelta(t, -38.609, v.Z, 1e-4)
	assert.InDelta(t, -3.8609, disp.Z, 1e-4)
}

func TestDragDeceleration(t *testing.T) {
	drag := DragConfig{Mode: ModeDrag, DragCoefficient: 1, AirDensity: 2, ReferenceArea: 1, Mass: 1}

	// 100 in/s = 2.54 m/s, F = v^2 = 6.4516 N, a = 6.4516 m/s^2 = 254 in/s^2
	assert.InDelta(t, 254.0, drag.Deceleration(100), 1e-2)
	assert.Zero(t, drag.Deceleration(0))

	drag.Mass = 0
	assert.Zero(t, drag.Deceleration(100), "massless config must not divide by zero")
}

func TestIntegrateDragSlowsProjectile(t *testing.T) {
	start := rl.Vector3{X: 400}
	drag := DefaultDragConfig()

	noDrag, _ := Integrate(start, 0.02, drag, ModeNone)
	withDrag, _ := Integrate(start, 0.02, drag, ModeDrag)

	assert.Less(t, withDrag.X, noDrag.X)
	assert.Greater(t, withDrag.X, float32(0))
	// Gravity is applied the same way in both modes
	assert.InDelta(t, noDrag.Z, withDrag.Z, 1e-6)
}

func TestIntegrateDragNeverReverses(t *testing.T) {
	drag := DragConfig{Mode: ModeDrag, DragCoefficient: 1000, AirDensity: 1000, ReferenceArea: 1, Mass: 0.001}

	v, _ := Integrate(rl.Vector3{X: 50, Y: -50}, 1, drag, ModeDrag)

	assert.InDelta(t, 0, v.X, 1e-3)
	assert.InDelta(t, 0, v.Y, 1e-3)
}

func TestIntegrateDragCalcUsesRadius(t *testing.T) {
	base := DefaultDragConfig()
	small := base.ForRadius(1)
	large := base.ForRadius(10)

	require.Greater(t, large.ReferenceArea, small.ReferenceArea)

	vs, _ := Integrate(rl.Vector3{X: 400}, 0.05, small, ModeDragCalc)
	vl, _ := Integrate(rl.Vector3{X: 400}, 0.05, large, ModeDragCalc)
	assert.Less(t, vl.X, vs.X)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("drag_calc")
	require.NoError(t, err)
	assert.Equal(t, ModeDragCalc, m)
	assert.True(t, m.HasDrag())

	m, err = ParseMode(" None ")
	require.NoError(t, err)
	assert.Equal(t, ModeNone, m)
	assert.False(t, m.HasDrag())

	_, err = ParseMode("magnus")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
