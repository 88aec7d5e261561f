package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Target configuration
	if title := os.Getenv("BOSSWATCH_TITLE"); title != "" {
		cfg.Target.Title = title
	}

	if region := os.Getenv("BOSSWATCH_REGION"); region != "" {
		if r, ok := ParseRegion(region); ok {
			cfg.Target.Region = r
		}
	}

	// Watch configuration
	if interval := os.Getenv("BOSSWATCH_INTERVAL"); interval != "" {
		if seconds, err := strconv.Atoi(interval); err == nil && seconds > 0 {
			d := time.Duration(seconds) * time.Second
			if d >= cfg.Watch.MinInterval && d <= cfg.Watch.MaxInterval {
				cfg.Watch.Interval = d
			}
		}
	}

	if debounce := os.Getenv("BOSSWATCH_DEBOUNCE"); debounce != "" {
		if k, err := strconv.Atoi(debounce); err == nil && k >= 1 {
			cfg.Watch.Debounce = k
		}
	}

	if grace := os.Getenv("BOSSWATCH_STARTUP_GRACE"); grace != "" {
		if seconds, err := strconv.Atoi(grace); err == nil && seconds > 0 {
			cfg.Watch.StartupGrace = time.Duration(seconds) * time.Second
		}
	}

	if misses := os.Getenv("BOSSWATCH_MAX_MISSES"); misses != "" {
		if n, err := strconv.Atoi(misses); err == nil && n >= 1 {
			cfg.Watch.MaxConsecutiveMisses = n
		}
	}

	// Detection configuration
	if lum := os.Getenv("BOSSWATCH_LUMINANCE"); lum != "" {
		if v, err := strconv.ParseFloat(lum, 64); err == nil && v >= 0 {
			cfg.Detect.Luminance = v
		}
	}

	if tol := os.Getenv("BOSSWATCH_TOLERANCE"); tol != "" {
		if v, err := strconv.ParseFloat(tol, 64); err == nil && v > 0 {
			cfg.Detect.Tolerance = v
		}
	}

	if ratio := os.Getenv("BOSSWATCH_MATCH_RATIO"); ratio != "" {
		if v, err := strconv.ParseFloat(ratio, 64); err == nil && v > 0 && v <= 1 {
			cfg.Detect.MinMatchRatio = v
		}
	}

	// Notification configuration
	if enabled := os.Getenv("BOSSWATCH_NOTIFY"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Notify.Enabled = val
		}
	}

	if icon := os.Getenv("BOSSWATCH_ICON"); icon != "" {
		cfg.Notify.Icon = icon
	}

	if minBoss := os.Getenv("BOSSWATCH_MIN_BOSS_INTERVAL"); minBoss != "" {
		if seconds, err := strconv.Atoi(minBoss); err == nil && seconds >= 0 {
			cfg.Notify.MinBossInterval = time.Duration(seconds) * time.Second
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("BOSSWATCH_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv("BOSSWATCH_LOG_FILE"); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	// Web configuration
	if serve := os.Getenv("BOSSWATCH_SERVE"); serve != "" {
		if val, err := strconv.ParseBool(serve); err == nil {
			cfg.Web.Enabled = val
		}
	}

	if webHost := os.Getenv("BOSSWATCH_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("BOSSWATCH_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// ParseRegion parses a "x1,y1,x2,y2" region string.
func ParseRegion(s string) (Region, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, false
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, false
		}
		vals[i] = v
	}

	r := Region{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}
	if r.Width() <= 0 || r.Height() <= 0 {
		return Region{}, false
	}
	return r, true
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
