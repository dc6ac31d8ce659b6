package cavity

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/shgcavity/entity"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

// DefaultSamples is the number of s values swept when none are supplied.
const DefaultSamples = 50

// sample is the outcome of solving the cavity at one s value.
type sample struct {
	s      float64
	result entity.ModeResult
	err    error
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	values := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	values[n-1] = stop
	return values
}

// DefaultSValues returns n samples across the sweep window of b.
func DefaultSValues(b Bounds, n int) []float64 {
	w := b.SweepWindow()
	return Linspace(w.Min, w.Max, n)
}

// SolveRange solves the cavity for every s in sValues, or for DefaultSamples
// values across the stability range when sValues is nil. Samples for which
// the cavity is unstable are dropped; the remaining sequences stay
// index-aligned with the returned s values and keep the input order.
//
// It returns ErrUnstableForAllS when the stability range is narrower than
// MinStableWidth or has a negative edge, and ctx.Err() when ctx is done
// before every sample is solved.
func SolveRange(ctx context.Context, p parameters.Parameters, sValues []float64) (entity.SweptModeResult, error) {
	startTime := time.Now()

	bounds, err := SBounds(p)
	if err != nil {
		return entity.SweptModeResult{}, err
	}
	if !bounds.Usable() {
		return entity.SweptModeResult{}, fmt.Errorf("%w: s range [%g, %g] m", ErrUnstableForAllS, bounds.Min, bounds.Max)
	}

	if sValues == nil {
		sValues = DefaultSValues(bounds, DefaultSamples)
	}

	samples, err := solveSamples(ctx, p, sValues)
	if err != nil {
		return entity.SweptModeResult{}, err
	}

	result := entity.NewSweptModeResult(len(samples))
	dropped := 0
	for _, smp := range samples {
		if smp.err != nil {
			if !errors.Is(smp.err, ErrUnstable) {
				return entity.SweptModeResult{}, fmt.Errorf("failed to solve cavity at s = %g m: %w", smp.s, smp.err)
			}
			log.WithFields(log.Fields{
				"s":   smp.s,
				"min": bounds.Min,
				"max": bounds.Max,
			}).Debug("Cavity unstable for s value, sample dropped")
			dropped++
			continue
		}
		result.Append(smp.s, smp.result)
	}

	log.WithFields(log.Fields{
		"samples": len(sValues),
		"dropped": dropped,
		"time":    time.Since(startTime),
	}).Debug("Cavity swept")
	return result, nil
}

// solveSamples solves every s value on a pool of workers. Outcomes are
// stored by index so the order of sValues is preserved.
func solveSamples(ctx context.Context, p parameters.Parameters, sValues []float64) ([]sample, error) {
	samples := make([]sample, len(sValues))
	if len(sValues) == 0 {
		return samples, ctx.Err()
	}

	idxChan := make(chan int, len(sValues))
	for i := range sValues {
		idxChan <- i
	}
	close(idxChan)

	var wg sync.WaitGroup
	for range min(runtime.GOMAXPROCS(0), len(sValues)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxChan {
				if ctx.Err() != nil {
					return
				}
				result, err := Solve(p.WithS(sValues[i]))
				samples[i] = sample{s: sValues[i], result: result, err: err}
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
