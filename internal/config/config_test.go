package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/visionarypub/internal/config"
	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "visionarypub.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolate keeps the host environment and /etc out of the test.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("VISIONARYPUB_CONFIG", filepath.Join(t.TempDir(), "empty.toml"))
	require.NoError(t, os.WriteFile(os.Getenv("VISIONARYPUB_CONFIG"), nil, 0o600))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
frame_id = "sensor_link"
rate = 15.5
width = 64
height = 48
frames = 100
subscribe = ["points", "depth"]
telemetry = true
telemetry_db = "/path/to/telemetry.db"
telemetry_batch_size = 10
telemetry_batch_timeout = "2s"

[mount]
z = 1.25
yaw = 0.5
`)

	cfg, err := config.Load(nil, config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sensor_link", cfg.FrameID)
	assert.Equal(t, 15.5, cfg.Rate)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
	assert.Equal(t, 100, cfg.Frames)
	assert.Equal(t, []string{"points", "depth"}, cfg.Subscribe)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, "/path/to/telemetry.db", cfg.TelemetryDB)
	assert.Equal(t, 10, cfg.TelemetryBatchSize)
	assert.Equal(t, 2*time.Second, cfg.TelemetryBatchTimeout)
	assert.Equal(t, config.Mount{Z: 1.25, Yaw: 0.5}, cfg.Mount)

	streams, err := cfg.Streams()
	require.NoError(t, err)
	assert.Equal(t, []publish.Stream{publish.StreamPoints, publish.StreamDepth}, streams)
	assert.NotNil(t, cfg.Extrinsics())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(nil)
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, string(config.DefaultLogLevel), cfg.LogLevel)
	assert.Equal(t, config.DefaultFrameID, cfg.FrameID)
	assert.Equal(t, config.DefaultRate, cfg.Rate)
	assert.Equal(t, config.DefaultWidth, cfg.Width)
	assert.Equal(t, config.DefaultHeight, cfg.Height)
	assert.Zero(t, cfg.Frames)
	assert.False(t, cfg.Telemetry)
	assert.Equal(t, config.DefaultBatchTimeout, cfg.TelemetryBatchTimeout)
	assert.Equal(t, config.DefaultPIDFile, cfg.PIDFile)
	assert.Nil(t, cfg.Extrinsics())

	streams, err := cfg.Streams()
	require.NoError(t, err)
	assert.Equal(t, publish.AllStreams(), streams)
}

func TestFlagsOverrideFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log_level = "error"
rate = 5
width = 32
`)
	t.Setenv("VISIONARYPUB_RATE", "12")
	t.Setenv("VISIONARYPUB_HEIGHT", "24")

	cfg, err := config.Load([]string{"--log-level", "debug", "--width", "16"}, config.WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel, "flag beats file")
	assert.Equal(t, 16, cfg.Width, "flag beats file")
	assert.Equal(t, 12.0, cfg.Rate, "env beats file")
	assert.Equal(t, 24, cfg.Height, "env beats default")
}

func TestEnvNestedAndList(t *testing.T) {
	isolate(t)
	t.Setenv("VISIONARYPUB_MOUNT_X", "0.3")
	t.Setenv("VISIONARYPUB_SUBSCRIBE", "imu_data,fields")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Mount.X)
	streams, err := cfg.Streams()
	require.NoError(t, err)
	assert.Equal(t, []publish.Stream{publish.StreamIMU, publish.StreamFields}, streams)
}

func TestCustomEnvPrefix(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
frame_id = "from_prefixed_file"
rate = 5
`)
	t.Setenv("SENSORPUB_CONFIG", path)
	t.Setenv("SENSORPUB_RATE", "7")
	t.Setenv("VISIONARYPUB_WIDTH", "99")

	cfg, err := config.Load(nil, config.WithEnvPrefix("SENSORPUB"))
	require.NoError(t, err)

	assert.Equal(t, "from_prefixed_file", cfg.FrameID)
	assert.Equal(t, 7.0, cfg.Rate, "prefixed env beats file")
	assert.NotEqual(t, 99, cfg.Width, "default prefix is ignored")
}

func TestConfigFlag(t *testing.T) {
	t.Setenv("VISIONARYPUB_CONFIG", "/nonexistent/visionarypub.toml")
	path := writeConfig(t, `frame_id = "from_flag"`)

	cfg, err := config.Load([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.FrameID)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	path := writeConfig(t, `
This is not a valid TOML file
`)

	_, err := config.Load(nil, config.WithConfigFile(path))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := config.Load(nil, config.WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"invalid log level", []string{"--log-level", "invalid"}, errors.ErrInvalidLogLevel},
		{"zero rate", []string{"--rate", "0"}, errors.ErrInvalidRate},
		{"negative rate", []string{"--rate", "-1"}, errors.ErrInvalidRate},
		{"zero width", []string{"--width", "0"}, errors.ErrInvalidDimensions},
		{"negative height", []string{"--height", "-4"}, errors.ErrInvalidDimensions},
		{"unknown stream", []string{"--subscribe", "points,lidar"}, errors.ErrInvalidStream},
		{"negative frames", []string{"--frames", "-1"}, errors.ErrInvalidConfig},
		{"empty frame id", []string{"--frame-id", ""}, errors.ErrInvalidConfig},
		{"unknown flag", []string{"--interval", "2"}, errors.ErrBindFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, err := config.Load(tt.args)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestStreamsDeduplicates(t *testing.T) {
	cfg := &config.Config{Subscribe: []string{"points", "POINTS", " depth ", ""}}

	streams, err := cfg.Streams()
	require.NoError(t, err)
	assert.Equal(t, []publish.Stream{publish.StreamPoints, publish.StreamDepth}, streams)
}

func TestLogLevel(t *testing.T) {
	assert.True(t, config.LogLevelWarning.IsValid())
	assert.False(t, config.LogLevel("warn").IsValid())
	assert.Equal(t, "info", config.LogLevelInfo.String())
}
