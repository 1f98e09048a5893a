package sweep

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultPoints is the number of samples used for chart curves.
const DefaultPoints = 50

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Curve struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

type Range struct {
	From   float64 `json:"from"`
	To     float64 `json:"to"`
	Points int     `json:"points"`
}

// Values expands r into sample points, falling back to def for a zero range.
func (r Range) Values(def Range) []float64 {
	if r.Points <= 0 {
		r.Points = def.Points
	}
	if r.From == 0 && r.To == 0 {
		r.From, r.To = def.From, def.To
	}
	return Linspace(r.From, r.To, r.Points)
}

func (r Range) Samples() []float64 {
	return Linspace(r.From, r.To, r.Points)
}

// Linspace returns n evenly spaced values over [start, stop], both ends included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Run evaluates fn at every x concurrently. Points come back in the order of xs.
func Run(ctx context.Context, xs []float64, fn func(x float64) (float64, error)) ([]Point, error) {
	out := make([]Point, len(xs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, x := range xs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			y, err := fn(x)
			if err != nil {
				return fmt.Errorf("sample %d (x=%g): %w", i, x, err)
			}
			out[i] = Point{X: x, Y: y}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Map is Run for models that cannot fail.
func Map(ctx context.Context, xs []float64, fn func(x float64) float64) ([]Point, error) {
	return Run(ctx, xs, func(x float64) (float64, error) {
		return fn(x), nil
	})
}
