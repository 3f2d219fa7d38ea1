package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"codeberg.org/mutker/visionarypub/internal/config"
	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/logger"
	"codeberg.org/mutker/visionarypub/internal/msgs"
	"codeberg.org/mutker/visionarypub/internal/pid"
	"codeberg.org/mutker/visionarypub/internal/publish"
	"codeberg.org/mutker/visionarypub/internal/simulator"
	"codeberg.org/mutker/visionarypub/internal/telemetry"
	"codeberg.org/mutker/visionarypub/internal/transport"
	"github.com/spf13/pflag"
)

const recordTimeout = time.Second

// tap counts what a loopback subscriber receives on one stream.
type tap struct {
	stream   publish.Stream
	messages atomic.Uint64
	bytes    atomic.Uint64
}

func (t *tap) handle(_ publish.Stream, data []byte) {
	t.messages.Add(1)
	t.bytes.Add(uint64(len(data)))
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		IsService: logger.IsService(),
	})
	logger.Debug().Msg("Config loaded")

	if err := run(cfg); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithCode(appErr).Msg("Exiting with error")
		} else {
			logger.Error().Err(err).Msg("Exiting with error")
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	pidFile := pid.New(cfg.PIDFile)
	if err := pidFile.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pidFile.Remove(); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove PID file")
		}
	}()

	collector, err := telemetry.NewService(cfg.TelemetryConfig(), logger.Default().WithComponent("telemetry"))
	if err != nil {
		return err
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close telemetry")
		}
	}()

	bus := transport.NewLoopback(logger.Default().WithComponent("transport"))
	streams, err := cfg.Streams()
	if err != nil {
		return err
	}
	taps := make([]*tap, 0, len(streams))
	for _, s := range streams {
		t := &tap{stream: s}
		cancel := bus.Subscribe(s, t.handle)
		defer cancel()
		taps = append(taps, t)
	}

	sim, err := simulator.New(simulator.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Rate:   cfg.Rate,
		Mount:  cfg.Extrinsics(),
	}, logger.Default().WithComponent("simulator"))
	if err != nil {
		return err
	}

	dispatcher := publish.NewDispatcher(bus, publish.WithLogger(logger.Default().WithComponent("dispatcher")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(ctx, cancel)

	logger.Info().
		Str("run_id", collector.RunID()).
		Str("frame_id", cfg.FrameID).
		Float64("rate", cfg.Rate).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("subscribed", len(streams)).
		Msg("Publisher started")

	frames := 0
	for f := range sim.Stream(ctx) {
		header := msgs.Header{Seq: f.Seq, Stamp: f.Stamp, FrameID: cfg.FrameID}
		report := dispatcher.Dispatch(header, f.Data)

		recordCtx, recordCancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := collector.Record(recordCtx, &report); err != nil {
			logger.Warn().Err(err).Uint32("seq", f.Seq).Msg("Failed to record telemetry")
		}
		recordCancel()

		frames++
		if cfg.Frames > 0 && frames >= cfg.Frames {
			cancel()
			break
		}
	}

	logSummary(frames, sim.Dropped(), taps)
	return nil
}

func handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		logger.Info().Msg("Received termination signal.")
		cancel()
	case <-ctx.Done():
	}
}

func logSummary(frames int, dropped uint64, taps []*tap) {
	for _, t := range taps {
		logger.Info().
			Str("stream", t.stream.String()).
			Uint64("messages", t.messages.Load()).
			Uint64("bytes", t.bytes.Load()).
			Msg("Stream summary")
	}
	logger.Info().
		Int("frames", frames).
		Uint64("dropped", dropped).
		Msg("Exiting...")
}
