// shadowdump computes one shadow frame without a window and prints the
// union and intersection regions as YAML.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"chosenoffset.com/shadowcast/internal/config"
	"chosenoffset.com/shadowcast/internal/core/aggregate"
	"chosenoffset.com/shadowcast/internal/core/shadows"
	"chosenoffset.com/shadowcast/internal/game"
	"chosenoffset.com/shadowcast/internal/logger"
)

var (
	flagFrames      = flag.Int("frames", 0, "Advance the orbits this many 1/60 s steps before computing")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

type region struct {
	Area  float64        `yaml:"area"`
	Rings [][][2]float64 `yaml:"rings"`
}

type frame struct {
	Frames       int          `yaml:"frames"`
	Lights       [][2]float64 `yaml:"lights"`
	Skipped      int          `yaml:"skipped_pairs"`
	Union        region       `yaml:"union"`
	Intersection region       `yaml:"intersection"`
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	if *flagWriteConfig != "" {
		if err := cfg.SaveTo(*flagWriteConfig); err != nil {
			logger.Error("failed to write config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config written", zap.String("path", *flagWriteConfig))
		return
	}

	scene := game.NewScene(cfg)
	for i := 0; i < *flagFrames; i++ {
		scene.Advance(1.0 / 60.0)
	}
	logger.Debug("scene advanced", zap.Int("frames", *flagFrames), zap.Int("lights", scene.Lights.Len()))

	agg := aggregate.Aggregator{
		Scale:   cfg.Shadows.Scale,
		Workers: cfg.Shadows.Workers,
		Logger:  logger.Named("aggregate"),
	}
	lights := scene.Lights.Positions()
	res, err := agg.Compute(context.Background(), lights, scene.Obstacles, scene.Boundary)
	if err != nil {
		logger.Error("shadow computation failed", zap.Error(err))
		os.Exit(1)
	}

	if len(res.Skipped) > 0 {
		logger.Warn("degenerate light/obstacle pairs skipped", zap.Int("count", len(res.Skipped)))
	}

	out := frame{
		Frames:       *flagFrames,
		Skipped:      len(res.Skipped),
		Union:        toRegion(res.Union),
		Intersection: toRegion(res.Intersection),
	}
	for _, l := range lights {
		out.Lights = append(out.Lights, [2]float64{l.X, l.Y})
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		logger.Error("failed to encode frame", zap.Error(err))
		os.Exit(1)
	}
	if err := enc.Close(); err != nil {
		logger.Error("failed to flush output", zap.Error(err))
		os.Exit(1)
	}
}

func toRegion(r shadows.Region) region {
	out := region{Area: r.Area(), Rings: make([][][2]float64, 0, len(r))}
	for _, poly := range r {
		ring := make([][2]float64, len(poly))
		for i, p := range poly {
			ring[i] = [2]float64{p.X, p.Y}
		}
		out.Rings = append(out.Rings, ring)
	}
	return out
}
