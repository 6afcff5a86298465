// Package config loads viewer settings from solaris.cfg.yaml through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Carmen-Shannon/solaris/engine/system"
	"github.com/Carmen-Shannon/solaris/engine/travel"
	"github.com/Carmen-Shannon/solaris/engine/tween"
)

// FileName is the config file looked up in the config directory.
const FileName = "solaris.cfg.yaml"

type Window struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

type System struct {
	Path          string  `mapstructure:"path"`
	DistanceScale float64 `mapstructure:"distanceScale"`
	PlanetScale   float64 `mapstructure:"planetScale"`
}

type Travel struct {
	DistanceRatio       float32       `mapstructure:"distanceRatio"`
	YawDegrees          float32       `mapstructure:"yawDegrees"`
	PitchDegrees        float32       `mapstructure:"pitchDegrees"`
	PositionDuration    time.Duration `mapstructure:"positionDuration"`
	OrientationDuration time.Duration `mapstructure:"orientationDuration"`
	OrientationDelay    time.Duration `mapstructure:"orientationDelay"`
	Easing              string        `mapstructure:"easing"`
}

type Indicator struct {
	Size         float32 `mapstructure:"size"`
	Margin       float32 `mapstructure:"margin"`
	FadeDistance float32 `mapstructure:"fadeDistance"`
}

// Log configures the rotating log file. An empty File disables file logging.
type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// Settings is the full typed configuration.
type Settings struct {
	LogLevel  string    `mapstructure:"logLevel"`
	Log       Log       `mapstructure:"log"`
	Window    Window    `mapstructure:"window"`
	System    System    `mapstructure:"system"`
	Travel    Travel    `mapstructure:"travel"`
	Indicator Indicator `mapstructure:"indicator"`
	Metrics   Metrics   `mapstructure:"metrics"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "INFO")
	viper.SetDefault("log.file", "solaris.log")
	viper.SetDefault("log.maxSizeMB", 16)
	viper.SetDefault("log.maxBackups", 2)

	viper.SetDefault("window.title", "Solaris")
	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)

	viper.SetDefault("system.path", "examples/sol.yaml")
	viper.SetDefault("system.distanceScale", 5.0)
	viper.SetDefault("system.planetScale", 100.0)

	viper.SetDefault("travel.distanceRatio", 7.0)
	viper.SetDefault("travel.yawDegrees", 30.0)
	viper.SetDefault("travel.pitchDegrees", 10.0)
	viper.SetDefault("travel.positionDuration", "3s")
	viper.SetDefault("travel.orientationDuration", "2s")
	viper.SetDefault("travel.orientationDelay", "1s")
	viper.SetDefault("travel.easing", string(tween.EaseInOutCubic))

	viper.SetDefault("indicator.size", 40.0)
	viper.SetDefault("indicator.margin", 20.0)
	viper.SetDefault("indicator.fadeDistance", 50.0)

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.address", ":9100")
}

// Load reads solaris.cfg.yaml from configDir on top of the defaults.
// A missing file is not an error.
//
// Parameters:
//   - configDir: directory searched for the config file
//
// Returns:
//   - Settings: the merged settings
//   - error: read, decode or validation failure
func Load(configDir string) (Settings, error) {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values that would otherwise fail later at first use.
func (s Settings) Validate() error {
	if _, err := tween.Lookup(tween.Easing(s.Travel.Easing)); err != nil {
		return fmt.Errorf("travel.easing: %w", err)
	}
	if s.Travel.PositionDuration <= 0 || s.Travel.OrientationDuration <= 0 {
		return fmt.Errorf("travel durations: %w", tween.ErrInvalidDuration)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.System.DistanceScale <= 0 || s.System.PlanetScale <= 0 {
		return fmt.Errorf("system scales must be positive")
	}
	return nil
}

// Scale returns the descriptor scaling settings.
func (s Settings) Scale() system.Scale {
	return system.Scale{DistanceScale: s.System.DistanceScale, PlanetScale: s.System.PlanetScale}
}

// Framing returns the travel framing settings.
func (s Settings) Framing() travel.Framing {
	return travel.Framing{
		DistanceRatio: s.Travel.DistanceRatio,
		YawDegrees:    s.Travel.YawDegrees,
		PitchDegrees:  s.Travel.PitchDegrees,
	}
}

// PositionTween returns the camera position tween settings.
func (s Settings) PositionTween() travel.TweenSettings {
	return travel.TweenSettings{
		Duration: s.Travel.PositionDuration,
		Easing:   tween.Easing(s.Travel.Easing),
	}
}

// OrientationTween returns the camera orientation tween settings.
func (s Settings) OrientationTween() travel.TweenSettings {
	return travel.TweenSettings{
		Duration: s.Travel.OrientationDuration,
		Delay:    s.Travel.OrientationDelay,
		Easing:   tween.Easing(s.Travel.Easing),
	}
}
