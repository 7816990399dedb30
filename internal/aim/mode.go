package aim

import (
	"fmt"
	"strings"
)

// Mode selects what the auto-aim writes each frame.
type Mode int

const (
	ModeOff      Mode = iota // manual control
	ModePitch                // solve yaw and pitch for the configured exit velocity
	ModeVelocity             // solve yaw and the exit velocity for the current pitch
)

var modeNames = [...]string{
	ModeOff:      "off",
	ModePitch:    "pitch",
	ModeVelocity: "velocity",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == key {
			return Mode(i), nil
		}
	}
	return ModeOff, fmt.Errorf("unknown auto-aim mode %q", s)
}
