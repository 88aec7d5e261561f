package config

import (
	"fmt"
	"os"
	"time"

	"bosswatch/internal/detect"
)

// LogMode controls how chatty the per-tick log stream is.
type LogMode int

const (
	// LogNormal logs state transitions plus warnings and errors.
	LogNormal LogMode = iota
	// LogVerbose additionally logs every tick's status, changed or not.
	LogVerbose
	// LogQuiet logs state transitions only.
	LogQuiet
)

func (m LogMode) String() string {
	switch m {
	case LogVerbose:
		return "verbose"
	case LogQuiet:
		return "quiet"
	default:
		return "normal"
	}
}

// Config holds all application configuration
type Config struct {
	// Target window configuration
	Target TargetConfig

	// Watch loop configuration
	Watch WatchConfig

	// Detection signature configuration
	Detect DetectConfig

	// Notification configuration
	Notify NotifyConfig

	// Daemon process configuration
	Daemon DaemonConfig

	// Status server configuration
	Web WebConfig

	// Log stream configuration
	Log LogConfig
}

// TargetConfig identifies the window to watch and the region inside it.
type TargetConfig struct {
	Title  string // Exact window title to match
	Region Region // Window-relative crop holding the boss health bar
}

// Region is a window-relative crop: offsets from the window's top-left
// corner. The defaults bracket the boss health bar on a default-scale window.
type Region struct {
	X1, Y1 int // Top-left offset, inclusive
	X2, Y2 int // Bottom-right offset, exclusive
}

// Width returns the region width in pixels.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns the region height in pixels.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// WatchConfig holds detection loop behavior configuration
type WatchConfig struct {
	Interval             time.Duration // Tick period
	MinInterval          time.Duration // Minimum allowed tick period
	MaxInterval          time.Duration // Maximum allowed tick period
	Debounce             int           // Consecutive matching samples before a transition commits
	StartupGrace         time.Duration // How long the window may stay unresolved at startup
	MaxConsecutiveMisses int           // Failed ticks tolerated mid-run before giving up
}

// DetectConfig holds the color signature thresholds. All three are
// empirically tuned; see detect.Signature.
type DetectConfig struct {
	Luminance     float64
	Tolerance     float64
	MinMatchRatio float64
}

// Signature converts the thresholds to a detect.Signature.
func (d DetectConfig) Signature() detect.Signature {
	return detect.Signature{
		Luminance:     d.Luminance,
		Tolerance:     d.Tolerance,
		MinMatchRatio: d.MinMatchRatio,
	}
}

// NotifyConfig holds notification delivery configuration
type NotifyConfig struct {
	Enabled         bool
	Icon            string        // Optional icon path shown with notifications
	MinBossInterval time.Duration // Floor between consecutive boss alerts
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Where daemonized runs write their log stream
}

// WebConfig holds status server configuration
type WebConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// LogConfig holds log stream configuration
type LogConfig struct {
	Mode LogMode
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Target: TargetConfig{
			Title:  "Mindustry",
			Region: Region{X1: 20, Y1: 145, X2: 25, Y2: 175},
		},
		Watch: WatchConfig{
			Interval:             5 * time.Second,
			MinInterval:          1 * time.Second,
			MaxInterval:          300 * time.Second,
			Debounce:             2,
			StartupGrace:         60 * time.Second,
			MaxConsecutiveMisses: 60,
		},
		Detect: DetectConfig{
			Luminance:     93.425,
			Tolerance:     1.0,
			MinMatchRatio: 0.95,
		},
		Notify: NotifyConfig{
			Enabled:         true,
			MinBossInterval: 120 * time.Second,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/bosswatch-%d.pid", os.Getuid()),
			LogFile: "/tmp/bosswatch.log",
		},
		Web: WebConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    10000 + os.Getuid(),
		},
		Log: LogConfig{
			Mode: LogNormal,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Target.Title == "" {
		return fmt.Errorf("target window title cannot be empty")
	}

	r := c.Target.Region
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("capture region must have positive area, got %dx%d", r.Width(), r.Height())
	}
	if r.X1 < 0 || r.Y1 < 0 {
		return fmt.Errorf("capture region offsets cannot be negative")
	}

	if c.Watch.Interval < c.Watch.MinInterval {
		return fmt.Errorf("tick interval (%v) cannot be less than minimum (%v)",
			c.Watch.Interval, c.Watch.MinInterval)
	}
	if c.Watch.Interval > c.Watch.MaxInterval {
		return fmt.Errorf("tick interval (%v) cannot be greater than maximum (%v)",
			c.Watch.Interval, c.Watch.MaxInterval)
	}
	if c.Watch.Debounce < 1 {
		return fmt.Errorf("debounce depth must be at least 1, got %d", c.Watch.Debounce)
	}
	if c.Watch.StartupGrace <= 0 {
		return fmt.Errorf("startup grace period must be positive")
	}
	if c.Watch.MaxConsecutiveMisses < 1 {
		return fmt.Errorf("max consecutive misses must be at least 1, got %d", c.Watch.MaxConsecutiveMisses)
	}

	if c.Detect.Tolerance <= 0 {
		return fmt.Errorf("luminance tolerance must be positive, got %g", c.Detect.Tolerance)
	}
	if c.Detect.MinMatchRatio <= 0 || c.Detect.MinMatchRatio > 1 {
		return fmt.Errorf("match ratio must be in (0, 1], got %g", c.Detect.MinMatchRatio)
	}

	if c.Notify.MinBossInterval < 0 {
		return fmt.Errorf("minimum boss alert interval cannot be negative")
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}
	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetInterval sets the tick interval with validation
func (c *Config) SetInterval(interval time.Duration) error {
	if interval < c.Watch.MinInterval {
		return fmt.Errorf("tick interval cannot be less than %v", c.Watch.MinInterval)
	}
	if interval > c.Watch.MaxInterval {
		return fmt.Errorf("tick interval cannot be greater than %v", c.Watch.MaxInterval)
	}
	c.Watch.Interval = interval
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Target:
    Title: %s
    Region: (%d,%d)-(%d,%d)
  Watch:
    Interval: %v
    Debounce: %d
    Startup Grace: %v
    Max Consecutive Misses: %d
  Detect:
    Luminance: %g
    Tolerance: %g
    Match Ratio: %g
  Notify:
    Enabled: %v
    Min Boss Interval: %v
  Daemon:
    PID File: %s
    Log File: %s
  Web:
    Enabled: %v
    Host: %s
    Port: %d
  Log:
    Mode: %s`,
		c.Target.Title,
		c.Target.Region.X1, c.Target.Region.Y1, c.Target.Region.X2, c.Target.Region.Y2,
		c.Watch.Interval,
		c.Watch.Debounce,
		c.Watch.StartupGrace,
		c.Watch.MaxConsecutiveMisses,
		c.Detect.Luminance,
		c.Detect.Tolerance,
		c.Detect.MinMatchRatio,
		c.Notify.Enabled,
		c.Notify.MinBossInterval,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Web.Enabled,
		c.Web.Host,
		c.Web.Port,
		c.Log.Mode,
	)
}
