package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Glitter levels accepted by Config.GlitterLevel. Auto lets each shell
// preset pick its own level.
const (
	GlitterAuto   = "auto"
	GlitterNone   = "none"
	GlitterLight  = "light"
	GlitterMedium = "medium"
	GlitterHeavy  = "heavy"
)

// Color modes accepted by Config.ColorMode. Auto lets each shell preset
// pick its own mode.
const (
	ColorModeAuto   = "auto"
	ColorModeSingle = "single"
	ColorModeDual   = "dual"
	ColorModeRandom = "random"
)

// Config holds the tunable simulation parameters. Zero-valued StarCount and
// SpreadSize mean "derive from the shell preset".
type Config struct {
	Gravity      float64  `yaml:"gravity"`
	StarCount    int      `yaml:"star_count"`
	Colors       []string `yaml:"colors"`
	SpreadSize   float64  `yaml:"spread_size"`
	GlitterLevel string   `yaml:"glitter"`
	ColorMode    string   `yaml:"color_mode"`

	// Shells
	ShellSize         float64 `yaml:"shell_size"`
	StarDensity       float64 `yaml:"star_density"`
	StarLifeVariation float64 `yaml:"star_life_variation"`

	// Drag, as a velocity multiplier per 60Hz frame
	StarAirDrag      float64 `yaml:"star_air_drag"`
	StarAirDragHeavy float64 `yaml:"star_air_drag_heavy"`
	SparkAirDrag     float64 `yaml:"spark_air_drag"`

	// Burst layering by radius factor
	LayerOuterThreshold  float64 `yaml:"layer_outer_threshold"`
	LayerMiddleThreshold float64 `yaml:"layer_middle_threshold"`

	// Launch
	SalvoMin           int     `yaml:"salvo_min"`
	SalvoMax           int     `yaml:"salvo_max"`
	RocketSpeedMin     float64 `yaml:"rocket_speed_min"`
	RocketSpeedMax     float64 `yaml:"rocket_speed_max"`
	RocketAcceleration float64 `yaml:"rocket_acceleration"`
	RocketGravity      float64 `yaml:"rocket_gravity"`
	RocketFriction     float64 `yaml:"rocket_friction"`
	RocketMaxFrames    int     `yaml:"rocket_max_frames"`
	LaunchScale        float64 `yaml:"launch_scale"`
	LaunchExponent     float64 `yaml:"launch_exponent"`
	LaunchPadX         float64 `yaml:"launch_pad_x"`
	LaunchPadY         float64 `yaml:"launch_pad_y"`

	// Rendering
	TrailLength   int           `yaml:"trail_length"`
	TrailFade     float64       `yaml:"trail_fade"`
	FlashDuration float64       `yaml:"flash_duration_ms"`
	HighQuality   bool          `yaml:"high_quality"`
	SimSpeed      float64       `yaml:"sim_speed"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`

	ResizeDebounce time.Duration `yaml:"resize_debounce"`
	Debug          bool          `yaml:"debug"`
}

// DefaultColors is the shell palette: red, green, blue, purple, gold, white.
var DefaultColors = []string{"#ff0043", "#14fc56", "#1e7fff", "#e60aff", "#ffbf36", "#ffffff"}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Gravity:      0.9,
		Colors:       append([]string(nil), DefaultColors...),
		GlitterLevel: GlitterAuto,
		ColorMode:    ColorModeAuto,

		ShellSize:         1,
		StarDensity:       1.25,
		StarLifeVariation: 0.125,

		StarAirDrag:      0.98,
		StarAirDragHeavy: 0.992,
		SparkAirDrag:     0.9,

		LayerOuterThreshold:  0.8,
		LayerMiddleThreshold: 0.4,

		SalvoMin:           5,
		SalvoMax:           7,
		RocketSpeedMin:     15,
		RocketSpeedMax:     20,
		RocketAcceleration: 0.04,
		RocketGravity:      0.12,
		RocketFriction:     0.99,
		RocketMaxFrames:    600,
		LaunchScale:        0.13,
		LaunchExponent:     0.64,
		LaunchPadX:         60,
		LaunchPadY:         50,

		TrailLength:   15,
		TrailFade:     0.175,
		FlashDuration: 60,
		SimSpeed:      1,
		MaxFrameDelta: 100 * time.Millisecond,

		ResizeDebounce: 150 * time.Millisecond,
	}
}

// Load reads a YAML file and overlays it on the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// FromEnv loads FIREWORKS_CONFIG when set, then applies the FIREWORKS_*
// variable overrides on top.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := GetEnv("FIREWORKS_CONFIG", ""); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	cfg.GlitterLevel = GetEnv("FIREWORKS_GLITTER", cfg.GlitterLevel)
	cfg.ColorMode = GetEnv("FIREWORKS_COLOR_MODE", cfg.ColorMode)
	cfg.Gravity = GetEnvFloat("FIREWORKS_GRAVITY", cfg.Gravity)
	cfg.ShellSize = GetEnvFloat("FIREWORKS_SHELL_SIZE", cfg.ShellSize)
	cfg.SimSpeed = GetEnvFloat("FIREWORKS_SPEED", cfg.SimSpeed)
	cfg.HighQuality = GetEnvBool("FIREWORKS_HIGH_QUALITY", cfg.HighQuality)
	cfg.Debug = GetEnvBool("FIREWORKS_DEBUG", cfg.Debug)
	return cfg, cfg.Validate()
}

// Validate reports the first out-of-range parameter.
func (c Config) Validate() error {
	switch {
	case c.Gravity < 0:
		return fmt.Errorf("%w: gravity %v is negative", ErrInvalid, c.Gravity)
	case c.StarCount < 0:
		return fmt.Errorf("%w: star_count %d is negative", ErrInvalid, c.StarCount)
	case c.SpreadSize < 0:
		return fmt.Errorf("%w: spread_size %v is negative", ErrInvalid, c.SpreadSize)
	case len(c.Colors) == 0:
		return fmt.Errorf("%w: colors is empty", ErrInvalid)
	case c.ShellSize < 0:
		return fmt.Errorf("%w: shell_size %v is negative", ErrInvalid, c.ShellSize)
	case c.StarDensity <= 0:
		return fmt.Errorf("%w: star_density must be positive", ErrInvalid)
	case c.StarLifeVariation < 0:
		return fmt.Errorf("%w: star_life_variation %v is negative", ErrInvalid, c.StarLifeVariation)
	case !inUnit(c.StarAirDrag) || !inUnit(c.StarAirDragHeavy) || !inUnit(c.SparkAirDrag) || !inUnit(c.RocketFriction):
		return fmt.Errorf("%w: drag and friction must be in (0, 1]", ErrInvalid)
	case c.LayerMiddleThreshold < 0 || c.LayerOuterThreshold > 1 || c.LayerMiddleThreshold >= c.LayerOuterThreshold:
		return fmt.Errorf("%w: layer thresholds need 0 <= middle < outer <= 1", ErrInvalid)
	case c.SalvoMin < 1 || c.SalvoMax < c.SalvoMin:
		return fmt.Errorf("%w: salvo range %d..%d", ErrInvalid, c.SalvoMin, c.SalvoMax)
	case c.RocketSpeedMin <= 0 || c.RocketSpeedMax < c.RocketSpeedMin:
		return fmt.Errorf("%w: rocket speed range %v..%v", ErrInvalid, c.RocketSpeedMin, c.RocketSpeedMax)
	case c.RocketAcceleration < 0 || c.RocketGravity < 0:
		return fmt.Errorf("%w: rocket acceleration and gravity must not be negative", ErrInvalid)
	case c.RocketMaxFrames < 1:
		return fmt.Errorf("%w: rocket_max_frames must be positive", ErrInvalid)
	case c.LaunchScale <= 0 || c.LaunchExponent <= 0:
		return fmt.Errorf("%w: launch scale and exponent must be positive", ErrInvalid)
	case c.TrailLength < 1 || c.TrailLength > 64:
		return fmt.Errorf("%w: trail_length %d outside 1..64", ErrInvalid, c.TrailLength)
	case c.TrailFade <= 0 || c.TrailFade > 1:
		return fmt.Errorf("%w: trail_fade %v outside (0, 1]", ErrInvalid, c.TrailFade)
	case c.FlashDuration <= 0:
		return fmt.Errorf("%w: flash_duration_ms must be positive", ErrInvalid)
	case c.SimSpeed <= 0:
		return fmt.Errorf("%w: sim_speed must be positive", ErrInvalid)
	case c.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: max_frame_delta must be positive", ErrInvalid)
	case c.ResizeDebounce < 0:
		return fmt.Errorf("%w: resize_debounce is negative", ErrInvalid)
	}

	switch c.GlitterLevel {
	case GlitterAuto, GlitterNone, GlitterLight, GlitterMedium, GlitterHeavy:
	default:
		return fmt.Errorf("%w: unknown glitter level %q", ErrInvalid, c.GlitterLevel)
	}

	switch c.ColorMode {
	case ColorModeAuto, ColorModeSingle, ColorModeDual, ColorModeRandom:
	default:
		return fmt.Errorf("%w: unknown color mode %q", ErrInvalid, c.ColorMode)
	}

	for _, hex := range c.Colors {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: color %q: %v", ErrInvalid, hex, err)
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v > 0 && v <= 1
}
