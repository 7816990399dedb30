package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"turretsim/internal/aim"
	"turretsim/internal/physics"
	"turretsim/internal/units"
)

const (
	panelWidth = 300
	rowHeight  = 22
	labelWidth = 110
	textSize   = 15
)

var (
	colorBgDark        = rl.NewColor(10, 10, 15, 255)
	colorBgPanel       = rl.NewColor(18, 18, 24, 235)
	colorBgElement     = rl.NewColor(28, 28, 38, 255)
	colorBgHover       = rl.NewColor(38, 38, 52, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, textSize)
}

// layout stacks rows top to bottom inside the panel.
type layout struct {
	x, y, width int32
}

func (l *layout) label(text string, color rl.Color) {
	rl.DrawText(text, l.x, l.y+4, textSize, color)
	l.y += rowHeight
}

func (l *layout) header(text string) {
	l.y += 6
	rl.DrawText(text, l.x, l.y, textSize+2, colorAccent)
	l.y += rowHeight
}

// field returns the control rectangle right of a row label.
func (l *layout) field(name string) rl.Rectangle {
	rl.DrawText(name, l.x, l.y+4, textSize, colorTextMuted)
	r := rl.Rectangle{
		X:      float32(l.x + labelWidth),
		Y:      float32(l.y),
		Width:  float32(l.width - labelWidth - 60),
		Height: rowHeight - 4,
	}
	l.y += rowHeight
	return r
}

func (l *layout) slider(name, value string, v, lo, hi float32) float32 {
	return gui.Slider(l.field(name), "", value, v, lo, hi)
}

// lengthSlider edits an inch value shown in display units. The value is only
// written back when the slider actually moved.
func (l *layout) lengthSlider(u units.System, name string, inches, lo, hi float32) float32 {
	shown := u.ToDisplay(inches)
	moved := l.slider(name, u.Format(inches), shown, u.ToDisplay(lo), u.ToDisplay(hi))
	if moved == shown {
		return inches
	}
	return u.FromDisplay(moved)
}

// radio draws one checkbox per option and returns the selected index.
func (l *layout) radio(options []string, selected int) int {
	x := l.x
	for i, name := range options {
		bounds := rl.Rectangle{X: float32(x), Y: float32(l.y), Width: rowHeight - 6, Height: rowHeight - 6}
		if gui.CheckBox(bounds, name, i == selected) && i != selected {
			selected = i
		}
		x += int32(rl.MeasureText(name, textSize)) + rowHeight + 14
	}
	l.y += rowHeight
	return selected
}

func (l *layout) button(text string) bool {
	r := rl.Rectangle{X: float32(l.x), Y: float32(l.y), Width: float32(l.width/2 - 4), Height: rowHeight}
	return gui.Button(r, text)
}

var (
	aimModes  = []aim.Mode{aim.ModeOff, aim.ModePitch, aim.ModeVelocity}
	dragModes = []physics.Mode{physics.ModeNone, physics.ModeDrag, physics.ModeDragCalc}
)

func names[T fmt.Stringer](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}

// sliderRow is one editable float in the panel.
type sliderRow struct {
	name   string
	format string
	value  *float32
	lo, hi float32
}

// dragSliders lists the drag coefficients the panel edits, in SI units.
func dragSliders(d *physics.DragConfig) []sliderRow {
	return []sliderRow{
		{"Cd", "%.2f", &d.DragCoefficient, 0.1, 1.0},
		{"Air density", "%.3f kg/m³", &d.AirDensity, 0.9, 1.4},
		{"Ref area", "%.4f m²", &d.ReferenceArea, 0.005, 0.05},
		{"Mass", "%.3f kg", &d.Mass, 0.05, 0.5},
	}
}

// drawPanel draws the settings panel and writes edits back to the simulation.
func (v *Viewer) drawPanel() {
	s := v.Sim
	u := v.Units
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	rl.DrawRectangle(screenW-panelWidth, 0, panelWidth, screenH, colorBgPanel)
	l := &layout{x: screenW - panelWidth + 12, y: 10, width: panelWidth - 24}

	st := s.Status()
	l.header("Status")
	l.label("Distance  "+u.Format(st.Distance), colorTextSecondary)
	if st.Solved {
		arc := "high"
		if !st.Solution.UsedHighArc {
			arc = "low"
		}
		if st.Solution.Fallback {
			arc = "fallback"
		}
		l.label(fmt.Sprintf("Elevation %.2f°  (%s)", st.Solution.Elevation, arc), colorTextSecondary)
		l.label(fmt.Sprintf("Pitch     %.2f°  Yaw %.2f°", st.Solution.Pitch, st.Solution.Yaw), colorTextSecondary)
	} else {
		l.label("No firing solution", colorTextMuted)
		l.y += rowHeight
	}
	l.label(fmt.Sprintf("In flight %d   Scored %d", st.Live, st.Scored), colorTextSecondary)

	l.header("Fuel")
	s.Fuel.ExitVelocity = l.lengthSlider(u, "Exit vel", s.Fuel.ExitVelocity, 50, 800)
	s.Fuel.BallDiameter = l.lengthSlider(u, "Diameter", s.Fuel.BallDiameter, 3, 8)
	s.Fuel.ShootingError = l.slider("Error", fmt.Sprintf("%.1f %%", s.Fuel.ShootingError), s.Fuel.ShootingError, 0, 20)

	l.header("Turret")
	off := &s.Controller.Turret.Offset
	off.X = l.lengthSlider(u, "Offset X", off.X, -20, 20)
	off.Y = l.lengthSlider(u, "Offset Y", off.Y, -10, 10)
	off.Z = l.lengthSlider(u, "Offset Z", off.Z, -20, 20)
	l.label("Auto aim", colorTextMuted)
	s.AimMode = aimModes[l.radio(names(aimModes), indexOf(aimModes, s.AimMode))]

	l.header("Drag")
	drag := s.Projectiles.Drag()
	drag.Mode = dragModes[l.radio(names(dragModes), indexOf(dragModes, drag.Mode))]
	for _, row := range dragSliders(&drag) {
		*row.value = l.slider(row.name, fmt.Sprintf(row.format, *row.value), *row.value, row.lo, row.hi)
	}
	s.Projectiles.SetDrag(drag)

	l.header("Display")
	metric := gui.CheckBox(rl.Rectangle{X: float32(l.x), Y: float32(l.y), Width: rowHeight - 6, Height: rowHeight - 6}, "Metric units", u == units.Metric)
	if metric {
		v.Units = units.Metric
	} else {
		v.Units = units.Imperial
	}
	l.y += rowHeight + 6

	if l.button("Fire") {
		v.fire()
	}
	l.x += l.width/2 + 4
	if l.button("Reset") {
		v.Sim.Reset()
	}
}
