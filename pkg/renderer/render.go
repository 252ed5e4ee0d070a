package renderer

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how pixel work is scheduled. Every strategy produces the same image.
type Strategy string

const (
	StrategySequential Strategy = "sequential" // Single goroutine, row by row
	StrategyPool       Strategy = "pool"       // Fixed worker pool fed one task per pixel
	StrategyRows       Strategy = "rows"       // Bounded goroutine per row
)

// Strategies lists the supported scheduling strategies
var Strategies = []Strategy{StrategySequential, StrategyPool, StrategyRows}

// ParseStrategy converts a name into a Strategy. The empty string selects the row strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return StrategyRows, nil
	case StrategySequential, StrategyPool, StrategyRows:
		return s, nil
	default:
		return "", fmt.Errorf("unknown render strategy %q (expected one of %v)", name, Strategies)
	}
}

// RenderOptions controls how an image is rendered
type RenderOptions struct {
	Strategy Strategy // Scheduling strategy, empty means StrategyRows
	Workers  int      // Parallelism for pool and rows, <= 0 means runtime.NumCPU()
}

// DefaultRenderOptions returns parallel row rendering on all CPUs
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Strategy: StrategyRows,
		Workers:  runtime.NumCPU(),
	}
}

// Render synthesizes the full image. Pixels that hit nothing hold the background color.
func (rt *Raytracer) Render(opts RenderOptions) Image {
	img, _, _ := rt.RenderWithStats(context.Background(), opts)
	return img
}

// RenderWithStats renders the image and reports statistics. It fails for an
// unknown strategy, or with ctx's error when cancelled before every pixel is traced.
func (rt *Raytracer) RenderWithStats(ctx context.Context, opts RenderOptions) (Image, RenderStats, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyRows
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if strategy == StrategySequential {
		workers = 1
	}

	width, height := rt.camera.Pixels()
	img := NewImage(width, height, rt.background)

	rt.logger.Debug("Render started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("depth", rt.recurseDepth),
		zap.String("strategy", string(strategy)),
		zap.Int("workers", workers),
	)

	start := time.Now()
	var hits int
	var err error
	switch strategy {
	case StrategySequential:
		hits, err = rt.renderSequential(ctx, img)
	case StrategyPool:
		hits, err = rt.renderPool(ctx, img, workers)
	case StrategyRows:
		hits, err = rt.renderRows(ctx, img, workers)
	default:
		return nil, RenderStats{}, fmt.Errorf("unknown render strategy %q", strategy)
	}

	stats := RenderStats{
		TotalPixels: width * height,
		HitPixels:   hits,
		Workers:     workers,
		Strategy:    strategy,
		Elapsed:     time.Since(start),
	}
	if err != nil {
		rt.logger.Warn("Render cancelled", zap.Error(err), zap.Duration("elapsed", stats.Elapsed))
		return img, stats, err
	}

	rt.logger.Info("Render finished",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("hit_pixels", hits),
		zap.String("strategy", string(strategy)),
		zap.Duration("elapsed", stats.Elapsed),
	)

	return img, stats, nil
}

// renderRow traces one row into img and returns the number of hits
func (rt *Raytracer) renderRow(img Image, row int) int {
	hits := 0
	for col := range img[row] {
		color, hit := rt.tracePixel(col, row)
		img[row][col] = color
		if hit {
			hits++
		}
	}
	return hits
}

func (rt *Raytracer) renderSequential(ctx context.Context, img Image) (int, error) {
	hits := 0
	for row := range img {
		if err := ctx.Err(); err != nil {
			return hits, err
		}
		hits += rt.renderRow(img, row)
	}
	return hits, nil
}

// renderRows traces rows concurrently, at most workers at a time.
// Each goroutine owns one row of img so no locking is needed.
func (rt *Raytracer) renderRows(ctx context.Context, img Image, workers int) (int, error) {
	rowHits := make([]int, len(img))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for row := range img {
		row := row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rowHits[row] = rt.renderRow(img, row)
			return nil
		})
	}
	err := g.Wait()

	hits := 0
	for _, h := range rowHits {
		hits += h
	}
	return hits, err
}

// renderPool feeds every pixel through a WorkerPool and assembles results
// from the completion channel
func (rt *Raytracer) renderPool(ctx context.Context, img Image, workers int) (int, error) {
	pool := NewWorkerPool(rt, workers)
	pool.Start()

	go func() {
		defer pool.Stop()
		for row := range img {
			for col := range img[row] {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pool.SubmitTask(PixelTask{Row: row, Col: col})
			}
		}
	}()

	hits := 0
	for result := range pool.Results() {
		img[result.Row][result.Col] = result.Color
		if result.Hit {
			hits++
		}
	}

	return hits, ctx.Err()
}
