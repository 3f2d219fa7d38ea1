// Package config loads settings from flags, environment and a TOML file,
// in that order of precedence, on top of built-in defaults.
package config

import (
	"math"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/publish"
	"codeberg.org/mutker/visionarypub/internal/telemetry"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel       = LogLevelInfo
	DefaultConfigPath     = "/etc/visionarypub.toml"
	DefaultEnvPrefix      = "VISIONARYPUB"
	DefaultFrameID        = "camera"
	DefaultRate           = 30.0
	DefaultWidth          = 512
	DefaultHeight         = 384
	DefaultTelemetryDB    = "/var/lib/visionarypub/telemetry.db"
	DefaultBatchSize      = 50
	DefaultBatchTimeout   = 5 * time.Second
	DefaultPIDFile        = "/run/visionarypub.pid"
	configFileEnvVariable = "CONFIG"
)

// Mount is the sensor pose in the output frame: meters and radians.
type Mount struct {
	X     float64 `mapstructure:"x"`
	Y     float64 `mapstructure:"y"`
	Z     float64 `mapstructure:"z"`
	Roll  float64 `mapstructure:"roll"`
	Pitch float64 `mapstructure:"pitch"`
	Yaw   float64 `mapstructure:"yaw"`
}

type Config struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	FrameID string  `mapstructure:"frame_id"`
	Rate    float64 `mapstructure:"rate"`
	Width   int     `mapstructure:"width"`
	Height  int     `mapstructure:"height"`
	// Frames stops the process after this many frames; 0 runs until
	// signalled.
	Frames    int      `mapstructure:"frames"`
	Subscribe []string `mapstructure:"subscribe"`
	Mount     Mount    `mapstructure:"mount"`

	Telemetry             bool          `mapstructure:"telemetry"`
	TelemetryDB           string        `mapstructure:"telemetry_db"`
	TelemetryBatchSize    int           `mapstructure:"telemetry_batch_size"`
	TelemetryBatchTimeout time.Duration `mapstructure:"telemetry_batch_timeout"`

	PIDFile string `mapstructure:"pid_file"`
}

func streamNames() []string {
	streams := publish.AllStreams()
	names := make([]string, len(streams))
	for i, s := range streams {
		names[i] = s.String()
	}
	return names
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("log_file", "")
	v.SetDefault("frame_id", DefaultFrameID)
	v.SetDefault("rate", DefaultRate)
	v.SetDefault("width", DefaultWidth)
	v.SetDefault("height", DefaultHeight)
	v.SetDefault("frames", 0)
	v.SetDefault("subscribe", streamNames())
	for _, k := range []string{"x", "y", "z", "roll", "pitch", "yaw"} {
		v.SetDefault("mount."+k, 0.0)
	}
	v.SetDefault("telemetry", false)
	v.SetDefault("telemetry_db", DefaultTelemetryDB)
	v.SetDefault("telemetry_batch_size", DefaultBatchSize)
	v.SetDefault("telemetry_batch_timeout", DefaultBatchTimeout)
	v.SetDefault("pid_file", DefaultPIDFile)
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"log-file":     "log_file",
	"frame-id":     "frame_id",
	"rate":         "rate",
	"width":        "width",
	"height":       "height",
	"frames":       "frames",
	"subscribe":    "subscribe",
	"telemetry":    "telemetry",
	"telemetry-db": "telemetry_db",
	"pid-file":     "pid_file",
	"mount-x":      "mount.x",
	"mount-y":      "mount.y",
	"mount-z":      "mount.z",
	"mount-roll":   "mount.roll",
	"mount-pitch":  "mount.pitch",
	"mount-yaw":    "mount.yaw",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("visionarypub", pflag.ContinueOnError)

	fs.String("config", "", "Path to the TOML configuration file")
	fs.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	fs.String("log-file", "", "Write logs to this file with rotation instead of stdout")
	fs.String("frame-id", DefaultFrameID, "Frame id stamped on every message")
	fs.Float64("rate", DefaultRate, "Frame rate in Hz")
	fs.Int("width", DefaultWidth, "Frame width in pixels")
	fs.Int("height", DefaultHeight, "Frame height in pixels")
	fs.Int("frames", 0, "Stop after this many frames (0 runs until signalled)")
	fs.StringSlice("subscribe", streamNames(), "Streams that get a loopback subscriber")
	fs.Bool("telemetry", false, "Record dispatch outcomes to sqlite")
	fs.String("telemetry-db", DefaultTelemetryDB, "Telemetry database path")
	fs.String("pid-file", DefaultPIDFile, "PID file path")
	fs.Float64("mount-x", 0, "Mount translation x in meters")
	fs.Float64("mount-y", 0, "Mount translation y in meters")
	fs.Float64("mount-z", 0, "Mount translation z in meters")
	fs.Float64("mount-roll", 0, "Mount roll in radians")
	fs.Float64("mount-pitch", 0, "Mount pitch in radians")
	fs.Float64("mount-yaw", 0, "Mount yaw in radians")

	return fs
}

// Load builds the configuration from args (without the program name),
// the environment and the configuration file, then validates it.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	if err := readConfigFile(v, fs, o); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readConfigFile loads the first configured file. Only the default path
// may be missing.
func readConfigFile(v *viper.Viper, fs *pflag.FlagSet, o options) error {
	errFactory := errors.New()

	path, explicit := o.configPath, o.configPath != ""
	if p, _ := fs.GetString("config"); p != "" {
		path, explicit = p, true
	}
	if !explicit {
		if p := os.Getenv(o.envPrefix + "_" + configFileEnvVariable); p != "" {
			path, explicit = p, true
		}
	}
	if path == "" {
		path = DefaultConfigPath
	}

	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return errFactory.WithData(errors.ErrReadConfig, struct {
			Path  string
			Error string
		}{
			Path:  path,
			Error: err.Error(),
		})
	}

	return nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, struct {
			LogLevel string
		}{
			LogLevel: c.LogLevel,
		})
	}

	if c.Rate <= 0 || math.IsInf(c.Rate, 0) || math.IsNaN(c.Rate) {
		return errFactory.WithData(errors.ErrInvalidRate, struct {
			Rate float64
		}{
			Rate: c.Rate,
		})
	}

	if c.Width <= 0 || c.Height <= 0 {
		return errFactory.WithData(errors.ErrInvalidDimensions, struct {
			Width, Height int
		}{
			Width:  c.Width,
			Height: c.Height,
		})
	}

	if c.Frames < 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "frames must not be negative")
	}

	if c.FrameID == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "frame_id must not be empty")
	}

	if _, err := c.Streams(); err != nil {
		return err
	}

	if err := c.TelemetryConfig().Validate(); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	return nil
}

// Streams returns the subscribed streams without duplicates.
func (c *Config) Streams() ([]publish.Stream, error) {
	seen := make(map[publish.Stream]bool, len(c.Subscribe))
	out := make([]publish.Stream, 0, len(c.Subscribe))

	for _, name := range c.Subscribe {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, err := publish.ParseStream(name)
		if err != nil {
			return nil, err
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return out, nil
}

// Extrinsics returns the mounting transform, or nil when the mount is the
// identity.
func (c *Config) Extrinsics() *frame.Extrinsics {
	if c.Mount == (Mount{}) {
		return nil
	}
	m := c.Mount
	return frame.NewExtrinsics(m.X, m.Y, m.Z, m.Roll, m.Pitch, m.Yaw)
}

func (c *Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:      c.Telemetry,
		DBPath:       c.TelemetryDB,
		BatchSize:    c.TelemetryBatchSize,
		BatchTimeout: c.TelemetryBatchTimeout,
	}
}
