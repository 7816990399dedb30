package config

import (
	"errors"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"turretsim/internal/aim"
	"turretsim/internal/physics"
	"turretsim/internal/turret"
	"turretsim/internal/units"
)

// FileName is the config file looked up in the config directory.
const FileName = "turretsim.json"

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// RobotSettings holds chassis parameters
type RobotSettings struct {
	Width         float32 `json:"width" mapstructure:"width"`
	Depth         float32 `json:"depth" mapstructure:"depth"`
	Speed         float32 `json:"speed" mapstructure:"speed"`
	RotationSpeed float32 `json:"rotationSpeed" mapstructure:"rotationSpeed"`
	ChassisHeight float32 `json:"chassisHeight" mapstructure:"chassisHeight"`
}

// TurretSettings holds turret mounting and aim parameters
type TurretSettings struct {
	OffsetX       float32 `json:"offsetX" mapstructure:"offsetX"`
	OffsetY       float32 `json:"offsetY" mapstructure:"offsetY"`
	OffsetZ       float32 `json:"offsetZ" mapstructure:"offsetZ"`
	RotationSpeed float32 `json:"rotationSpeed" mapstructure:"rotationSpeed"`
	BarrelLength  float32 `json:"barrelLength" mapstructure:"barrelLength"`
	AutoAimMode   string  `json:"autoAimMode" mapstructure:"autoAimMode"`
}

// FuelSettings holds launch parameters
type FuelSettings struct {
	ExitVelocity  float32 `json:"exitVelocity" mapstructure:"exitVelocity"`
	BallDiameter  float32 `json:"ballDiameter" mapstructure:"ballDiameter"`
	ShootingError float32 `json:"shootingError" mapstructure:"shootingError"`
}

// DragSettings holds aerodynamic parameters in SI units
type DragSettings struct {
	Mode            string  `json:"mode" mapstructure:"mode"`
	DragCoefficient float32 `json:"dragCoefficient" mapstructure:"dragCoefficient"`
	AirDensity      float32 `json:"airDensity" mapstructure:"airDensity"`
	ReferenceArea   float32 `json:"referenceArea" mapstructure:"referenceArea"`
	Mass            float32 `json:"mass" mapstructure:"mass"`
}

// SimSettings controls frame stepping
type SimSettings struct {
	FixedStep   float32 `json:"fixedStep" mapstructure:"fixedStep"`
	MaxSubSteps int     `json:"maxSubSteps" mapstructure:"maxSubSteps"`
}

// Settings is the full settings surface.
type Settings struct {
	Units    string         `json:"units" mapstructure:"units"`
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	Robot    RobotSettings  `json:"robot" mapstructure:"robot"`
	Turret   TurretSettings `json:"turret" mapstructure:"turret"`
	Fuel     FuelSettings   `json:"fuel" mapstructure:"fuel"`
	Drag     DragSettings   `json:"drag" mapstructure:"drag"`
	Sim      SimSettings    `json:"sim" mapstructure:"sim"`
}

func setDefaults() {
	robot := turret.DefaultRobot()
	tur := turret.DefaultTurret()
	drag := physics.DefaultDragConfig()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("units", "imperial")

	viper.SetDefault("robot.width", robot.Width)
	viper.SetDefault("robot.depth", robot.Depth)
	viper.SetDefault("robot.speed", robot.Speed)
	viper.SetDefault("robot.rotationSpeed", robot.RotationSpeed)
	viper.SetDefault("robot.chassisHeight", robot.ChassisHeight)

	viper.SetDefault("turret.offsetX", 0)
	viper.SetDefault("turret.offsetY", 0)
	viper.SetDefault("turret.offsetZ", 0)
	viper.SetDefault("turret.rotationSpeed", tur.RotationSpeed)
	viper.SetDefault("turret.barrelLength", tur.BarrelLength)
	viper.SetDefault("turret.autoAimMode", "pitch")

	viper.SetDefault("fuel.exitVelocity", 400)
	viper.SetDefault("fuel.ballDiameter", 5.91)
	viper.SetDefault("fuel.shootingError", 0)

	viper.SetDefault("drag.mode", drag.Mode.String())
	viper.SetDefault("drag.dragCoefficient", drag.DragCoefficient)
	viper.SetDefault("drag.airDensity", drag.AirDensity)
	viper.SetDefault("drag.referenceArea", drag.ReferenceArea)
	viper.SetDefault("drag.mass", drag.Mass)

	viper.SetDefault("sim.fixedStep", 1.0/120)
	viper.SetDefault("sim.maxSubSteps", 8)
}

// Load sets defaults, env overrides (TURRETSIM_FUEL_EXITVELOCITY and so on)
// and reads FileName from configDir. A missing file is not an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix("TURRETSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(strings.TrimSuffix(FileName, ".json"))
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// UsedFile is the config file that was read, empty when defaults applied.
func UsedFile() string {
	return viper.ConfigFileUsed()
}

// RegisterFlags adds the flags shared by every binary.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config-dir", ".", "directory containing "+FileName)
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
}

// BindFlags lets command-line flags override the loaded settings.
func BindFlags(fs *pflag.FlagSet) error {
	if f := fs.Lookup("log-level"); f != nil {
		if err := viper.BindPFlag("logLevel", f); err != nil {
			return fmt.Errorf("binding log-level: %w", err)
		}
	}
	return nil
}

// Get decodes and validates the current settings.
func Get() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks ranges and enum names.
func (s Settings) Validate() error {
	var errs []error

	if _, err := units.Parse(s.Units); err != nil {
		errs = append(errs, err)
	}
	if _, err := aim.ParseMode(s.Turret.AutoAimMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := physics.ParseMode(s.Drag.Mode); err != nil {
		errs = append(errs, err)
	}
	if !(s.Fuel.BallDiameter > 0) {
		errs = append(errs, fmt.Errorf("fuel.ballDiameter %v must be positive", s.Fuel.BallDiameter))
	}
	if !(s.Fuel.ExitVelocity > 0) {
		errs = append(errs, fmt.Errorf("fuel.exitVelocity %v must be positive", s.Fuel.ExitVelocity))
	}
	if !(s.Fuel.ShootingError >= 0) {
		errs = append(errs, fmt.Errorf("fuel.shootingError %v must not be negative", s.Fuel.ShootingError))
	}
	if !(s.Drag.Mass > 0) {
		errs = append(errs, fmt.Errorf("drag.mass %v must be positive", s.Drag.Mass))
	}
	if !(s.Sim.FixedStep > 0) {
		errs = append(errs, fmt.Errorf("sim.fixedStep %v must be positive", s.Sim.FixedStep))
	}
	if s.Sim.MaxSubSteps < 1 {
		errs = append(errs, fmt.Errorf("sim.maxSubSteps %d must be at least 1", s.Sim.MaxSubSteps))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}

// UnitSystem returns the parsed display units. Call after Validate.
func (s Settings) UnitSystem() units.System {
	u, _ := units.Parse(s.Units)
	return u
}

// AimMode returns the parsed auto-aim mode. Call after Validate.
func (s Settings) AimMode() aim.Mode {
	m, _ := aim.ParseMode(s.Turret.AutoAimMode)
	return m
}

// DragConfig converts the drag section. Call after Validate.
func (s Settings) DragConfig() physics.DragConfig {
	mode, _ := physics.ParseMode(s.Drag.Mode)
	return physics.DragConfig{
		Mode:            mode,
		DragCoefficient: s.Drag.DragCoefficient,
		AirDensity:      s.Drag.AirDensity,
		ReferenceArea:   s.Drag.ReferenceArea,
		Mass:            s.Drag.Mass,
	}
}

// RobotConfig builds the chassis at the origin.
func (s Settings) RobotConfig() turret.Robot {
	return turret.Robot{
		Width:         s.Robot.Width,
		Depth:         s.Robot.Depth,
		Speed:         s.Robot.Speed,
		RotationSpeed: s.Robot.RotationSpeed,
		ChassisHeight: s.Robot.ChassisHeight,
	}
}

// TurretConfig builds a centred turret.
func (s Settings) TurretConfig() turret.Turret {
	return turret.Turret{
		Offset:        rl.Vector3{X: s.Turret.OffsetX, Y: s.Turret.OffsetY, Z: s.Turret.OffsetZ},
		RotationSpeed: s.Turret.RotationSpeed,
		BarrelLength:  s.Turret.BarrelLength,
	}
}
