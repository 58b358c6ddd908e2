// sculptreplay replays scripted sculpt strokes against a primitive mesh
// without a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sculpt/internal/config"
	"github.com/Faultbox/midgard-sculpt/internal/logger"
)

var flagScript = flag.String("script", "", "Stroke script to replay (YAML)")

func main() {
	config.ParseFlags()

	if *flagScript == "" {
		fmt.Fprintln(os.Stderr, "Usage: sculptreplay -script <strokes.yaml> [-config <config.yaml>] [-kernel draw] [-size 50] [-strength 25] [-symmetry x]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Sculpt Replay ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	sc, err := loadScript(*flagScript)
	if err != nil {
		logger.Error("failed to load script", zap.Error(err))
		os.Exit(1)
	}

	r, err := newReplayer(cfg, sc)
	if err != nil {
		logger.Error("failed to set up replay", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := r.run(ctx, sc.Steps); err != nil {
		logger.Error("replay failed", zap.Error(err))
		os.Exit(1)
	}

	b := r.mesh.Bounds()
	lo, hi := b.Min.Array(), b.Max.Array()
	logger.Info("replay finished",
		zap.Int("steps", len(sc.Steps)),
		zap.Int("undo", len(r.host.undo)),
		zap.Float32s("min", lo[:]),
		zap.Float32s("max", hi[:]))
}
