package units

import (
	"fmt"
	"strings"
)

// CentimetersPerInch converts simulation lengths for metric display.
const CentimetersPerInch = 2.54

// System is the unit system lengths are displayed in. Physics is always inches.
type System int

const (
	Imperial System = iota
	Metric
)

func (s System) String() string {
	switch s {
	case Imperial:
		return "imperial"
	case Metric:
		return "metric"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Parse accepts "imperial" or "metric".
func Parse(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "imperial":
		return Imperial, nil
	case "metric":
		return Metric, nil
	default:
		return Imperial, fmt.Errorf("unknown unit system %q", s)
	}
}

func (s System) factor() float32 {
	if s == Metric {
		return CentimetersPerInch
	}
	return 1
}

// ToDisplay converts inches to the display unit.
func (s System) ToDisplay(inches float32) float32 {
	return inches * s.factor()
}

// FromDisplay converts a display value back to inches.
func (s System) FromDisplay(v float32) float32 {
	return v / s.factor()
}

// Label is the length unit suffix.
func (s System) Label() string {
	if s == Metric {
		return "cm"
	}
	return "in"
}

// SpeedLabel is the velocity unit suffix.
func (s System) SpeedLabel() string {
	return s.Label() + "/s"
}

// Format renders a length in inches with one decimal and its unit.
func (s System) Format(inches float32) string {
	return fmt.Sprintf("%.1f %s", s.ToDisplay(inches), s.Label())
}
