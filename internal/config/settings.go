package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// ErrInvalidSettings wraps every validation failure returned by Load.
var ErrInvalidSettings = errors.New("invalid settings")

// Game defaults.
const (
	DefaultGridWidth    = 10
	DefaultGridHeight   = 10
	DefaultMoveInterval = 150 * time.Millisecond
	DefaultFoodInterval = time.Second
	DefaultTargetFPS    = 60
)

// Session defaults for the SSH host.
const (
	DefaultInactivityWarn       = 90 * time.Second
	DefaultInactivityDisconnect = 120 * time.Second
	DefaultShutdownDisplay      = 10 * time.Second
	DefaultShutdownGrace        = 15 * time.Second
)

// Settings is the full process configuration, read from the environment.
type Settings struct {
	GridWidth    int
	GridHeight   int
	MoveInterval time.Duration
	FoodInterval time.Duration
	TargetFPS    int

	LogLevel log.Level
	LogFile  string // empty discards logs in the local terminal build

	SSHHost     string
	SSHPort     string
	SSHHostKey  string
	DisplayHost string // host shown on the web landing page

	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
	ShutdownDisplay      time.Duration
	ShutdownGrace        time.Duration

	WebHost string
	WebPort string
}

// Load reads a .env file if one is present and then the process
// environment. Unset variables take their defaults.
func Load() (Settings, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds Settings from the current environment only.
func FromEnv() (Settings, error) {
	s := Settings{
		SSHHost:     GetEnv("SSH_HOST", "::"),
		SSHPort:     GetEnv("SSH_PORT", "2222"),
		SSHHostKey:  GetEnv("SSH_HOST_KEY", ".ssh/snake_host_key"),
		DisplayHost: GetEnv("SSH_DISPLAY_HOST", "localhost"),
		WebHost:     GetEnv("WEB_HOST", "0.0.0.0"),
		WebPort:     GetEnv("WEB_PORT", "8080"),
		LogFile:     GetEnv("SNAKE_LOG_FILE", ""),
	}

	var errs []error
	intVar := func(dst *int, key string, fallback int) {
		v, err := GetEnvInt(key, fallback)
		errs = append(errs, err)
		*dst = v
	}
	durVar := func(dst *time.Duration, key string, fallback time.Duration) {
		v, err := GetEnvDuration(key, fallback)
		errs = append(errs, err)
		*dst = v
	}

	intVar(&s.GridWidth, "SNAKE_GRID_WIDTH", DefaultGridWidth)
	intVar(&s.GridHeight, "SNAKE_GRID_HEIGHT", DefaultGridHeight)
	intVar(&s.TargetFPS, "SNAKE_TARGET_FPS", DefaultTargetFPS)
	durVar(&s.MoveInterval, "SNAKE_MOVE_INTERVAL", DefaultMoveInterval)
	durVar(&s.FoodInterval, "SNAKE_FOOD_INTERVAL", DefaultFoodInterval)
	durVar(&s.InactivityWarn, "SNAKE_INACTIVITY_WARN", DefaultInactivityWarn)
	durVar(&s.InactivityDisconnect, "SNAKE_INACTIVITY_DISCONNECT", DefaultInactivityDisconnect)
	durVar(&s.ShutdownDisplay, "SNAKE_SHUTDOWN_DISPLAY", DefaultShutdownDisplay)
	durVar(&s.ShutdownGrace, "SNAKE_SHUTDOWN_GRACE", DefaultShutdownGrace)

	level, err := log.ParseLevel(GetEnv("SNAKE_LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("SNAKE_LOG_LEVEL: %w", err))
	}
	s.LogLevel = level

	if err := errors.Join(errs...); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	switch {
	case s.GridWidth <= 0 || s.GridHeight <= 0:
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidSettings, s.GridWidth, s.GridHeight)
	case s.MoveInterval <= 0 || s.FoodInterval <= 0:
		return fmt.Errorf("%w: tick intervals must be positive", ErrInvalidSettings)
	case s.TargetFPS <= 0:
		return fmt.Errorf("%w: target fps must be positive, got %d", ErrInvalidSettings, s.TargetFPS)
	case s.InactivityWarn < 0 || s.InactivityDisconnect < 0:
		return fmt.Errorf("%w: inactivity timeouts must not be negative", ErrInvalidSettings)
	case s.InactivityWarn > 0 && s.InactivityWarn >= s.InactivityDisconnect:
		return fmt.Errorf("%w: inactivity warning (%s) must come before disconnect (%s)",
			ErrInvalidSettings, s.InactivityWarn, s.InactivityDisconnect)
	}
	return nil
}

// FrameTime is the frame budget the terminal loops sleep toward.
func (s Settings) FrameTime() time.Duration {
	return time.Second / time.Duration(s.TargetFPS)
}
