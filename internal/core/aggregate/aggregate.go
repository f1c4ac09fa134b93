// Package aggregate folds per-obstacle shadows into one region per light and
// combines the lights into "any light" and "every light" composites.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/shadowcast/internal/core/boolops"
	"chosenoffset.com/shadowcast/internal/core/shadows"
)

// SkippedPair identifies a light/obstacle pair whose shadow was undefined
// this frame.
type SkippedPair struct {
	Light    int
	Obstacle int
	Err      error
}

// Result is one frame of shadow output.
type Result struct {
	PerLight     []shadows.Region
	Union        shadows.Region // shadowed from at least one light
	Intersection shadows.Region // shadowed from every light
	Skipped      []SkippedPair
}

// Aggregator computes shadow composites. The zero value snaps at
// boolops.DefaultScale and runs without a worker limit.
type Aggregator struct {
	Scale   float64
	Workers int // max lights processed concurrently, <= 0 means unlimited
	Logger  *zap.Logger
}

// Aggregate runs a default Aggregator with the given scale.
func Aggregate(lights []shadows.Point, obstacles []shadows.Rect, b shadows.Boundary, scale float64) (Result, error) {
	a := Aggregator{Scale: scale}
	return a.Compute(context.Background(), lights, obstacles, b)
}

func (a *Aggregator) scale() float64 {
	if a.Scale == 0 {
		return boolops.DefaultScale
	}
	return a.Scale
}

func (a *Aggregator) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Compute builds every light's shadow region, then the union and
// intersection across lights.
//
// A pair that fails with shadows.ErrDegenerateGeometry is skipped and
// reported in Result.Skipped. Any other failure aborts the frame.
func (a *Aggregator) Compute(ctx context.Context, lights []shadows.Point, obstacles []shadows.Rect, b shadows.Boundary) (Result, error) {
	log := a.logger()
	scale := a.scale()

	perLight := make([]shadows.Region, len(lights))
	skipped := make([][]SkippedPair, len(lights))

	g, gctx := errgroup.WithContext(ctx)
	if a.Workers > 0 {
		g.SetLimit(a.Workers)
	}
	for i, light := range lights {
		g.Go(func() error {
			region, skips, err := lightRegion(gctx, i, light, obstacles, b, scale)
			if err != nil {
				return fmt.Errorf("light %d: %w", i, err)
			}
			perLight[i] = region
			skipped[i] = skips
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{PerLight: perLight}
	for _, s := range skipped {
		for _, pair := range s {
			log.Debug("skipping degenerate pair",
				zap.Int("light", pair.Light),
				zap.Int("obstacle", pair.Obstacle),
				zap.Error(pair.Err))
		}
		res.Skipped = append(res.Skipped, s...)
	}

	// Both folds only read perLight.
	var fold errgroup.Group
	fold.Go(func() error {
		u, err := unionAll(perLight, scale)
		if err != nil {
			return fmt.Errorf("union across lights: %w", err)
		}
		res.Union = u
		return nil
	})
	fold.Go(func() error {
		x, err := intersectAll(perLight, scale)
		if err != nil {
			return fmt.Errorf("intersection across lights: %w", err)
		}
		res.Intersection = x
		return nil
	})
	if err := fold.Wait(); err != nil {
		return Result{}, err
	}

	log.Debug("shadow frame",
		zap.Int("lights", len(lights)),
		zap.Int("obstacles", len(obstacles)),
		zap.Int("union_rings", len(res.Union)),
		zap.Int("intersection_rings", len(res.Intersection)),
		zap.Int("skipped", len(res.Skipped)))

	return res, nil
}

// lightRegion unions the shadows one light casts across all obstacles.
func lightRegion(ctx context.Context, li int, light shadows.Point, obstacles []shadows.Rect, b shadows.Boundary, scale float64) (shadows.Region, []SkippedPair, error) {
	region := shadows.Region{}
	var skips []SkippedPair

	for oi, obstacle := range obstacles {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		poly, err := shadows.CastShadow(light, obstacle, b)
		if errors.Is(err, shadows.ErrDegenerateGeometry) {
			skips = append(skips, SkippedPair{Light: li, Obstacle: oi, Err: err})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		region, err = boolops.ScaledUnion(region, shadows.Region{poly}, scale)
		if err != nil {
			return nil, nil, fmt.Errorf("obstacle %d: %w", oi, err)
		}
	}
	return region, skips, nil
}

func unionAll(regions []shadows.Region, scale float64) (shadows.Region, error) {
	return fold(regions, boolops.ScaledUnion, scale)
}

// intersectAll reduces regions with intersection. No lights yields an empty
// region rather than the whole plane.
func intersectAll(regions []shadows.Region, scale float64) (shadows.Region, error) {
	return fold(regions, boolops.ScaledIntersection, scale)
}

// fold reduces regions left to right, seeded with a copy of the first one,
// so a single light yields identical union and intersection.
func fold(regions []shadows.Region, op func(a, b shadows.Region, scale float64) (shadows.Region, error), scale float64) (shadows.Region, error) {
	if len(regions) == 0 {
		return shadows.Region{}, nil
	}
	acc := append(shadows.Region{}, regions[0]...)
	for _, r := range regions[1:] {
		var err error
		if acc, err = op(acc, r, scale); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
