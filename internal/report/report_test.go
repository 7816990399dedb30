package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turretsim/internal/aim"
	"turretsim/internal/config"
	"turretsim/internal/projectile"
	"turretsim/internal/sim"
	"turretsim/internal/turret"
	"turretsim/internal/units"
)

func newSim(t *testing.T) *sim.Simulation {
	t.Helper()
	t.Cleanup(viper.Reset)
	require.NoError(t, config.Load(t.TempDir()))
	settings, err := config.Get()
	require.NoError(t, err)

	s, err := sim.New(settings)
	require.NoError(t, err)
	return s
}

func TestTraceAimedShot(t *testing.T) {
	s := newSim(t)

	shot, err := Trace(s, Options{AimTicks: 30, Every: 10})
	require.NoError(t, err)

	assert.True(t, shot.Solved)
	assert.True(t, shot.Scored)
	assert.InDelta(t, 74, shot.Score.Position.Z, 1e-3)
	assert.Greater(t, shot.Score.Time, shot.Apex.Time)
	assert.Greater(t, shot.Apex.Position.Z, float32(74))
	assert.Equal(t, projectile.RetireAge, shot.Reason)

	require.Greater(t, len(shot.Samples), 2)
	assert.Zero(t, shot.Samples[0].Time)
	for i := 1; i < len(shot.Samples); i++ {
		assert.Greater(t, shot.Samples[i].Time, shot.Samples[i-1].Time)
	}
	assert.Zero(t, s.Projectiles.Len())
	assert.Zero(t, s.OnScore.GetListenerCount(), "trace listeners are removed")
}

func TestTraceGroundRetirement(t *testing.T) {
	s := newSim(t)
	s.AimMode = aim.ModeOff
	s.Controller.SetAim(90, 60)
	s.Fuel.ExitVelocity = 150

	shot, err := Trace(s, Options{})
	require.NoError(t, err)

	assert.False(t, shot.Solved)
	assert.False(t, shot.Scored)
	assert.Equal(t, projectile.RetireGround, shot.Reason)
	assert.Less(t, shot.Age, projectile.MaxAge)
}

func TestTraceRejectsBadShot(t *testing.T) {
	s := newSim(t)
	s.Fuel.ExitVelocity = 0

	_, err := Trace(s, Options{})
	assert.ErrorIs(t, err, turret.ErrNoMuzzle)
}

func TestWriteTable(t *testing.T) {
	s := newSim(t)
	shot, err := Trace(s, Options{AimTicks: 30, Every: 60})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, shot, units.Metric))

	out := buf.String()
	assert.Contains(t, out, "z (cm)")
	assert.Contains(t, out, "speed (cm/s)")
	assert.Contains(t, out, "scored:  yes")
	assert.Contains(t, out, "retired: age")
}

func TestSideView(t *testing.T) {
	shot := Shot{Samples: []Sample{
		{Position: rl.Vector3{X: 10, Y: 10, Z: 20}},
		{Position: rl.Vector3{X: 13, Y: 14, Z: 30}},
	}}

	pts := SideView(shot, units.Metric)
	require.Len(t, pts, 2)
	assert.InDelta(t, 0, pts[0].X, 1e-6)
	assert.InDelta(t, 20*units.CentimetersPerInch, pts[0].Y, 1e-4)
	assert.InDelta(t, 5*units.CentimetersPerInch, pts[1].X, 1e-4)

	assert.Empty(t, SideView(Shot{}, units.Imperial))
}

func TestSavePlot(t *testing.T) {
	s := newSim(t)
	shot, err := Trace(s, Options{AimTicks: 30, Every: 4})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, SavePlot(shot, units.Imperial, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
