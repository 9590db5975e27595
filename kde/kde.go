// Package kde is a weighted univariate gaussian kernel density estimator.
package kde

import (
	"fmt"
	"sort"

	"github.com/uyouii/trajvis/common"
	"github.com/uyouii/trajvis/utils"
	"gonum.org/v1/gonum/floats"
)

type Estimator struct {
	samples []float64
	weights []float64
	total   float64
	bw      float64
	kernel  *GaussianKernel
}

type sample struct {
	x, w float64
}

// New fits an estimator on samples with the given weights, nil weights
// count every sample once. The rule of thumb bandwidth is multiplied by
// adjust, a non-positive adjust means 1.
func New(samples, weights []float64, adjust float64) (*Estimator, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no sample: %w", common.ErrorInvalidValue)
	}
	if weights != nil && len(weights) != len(samples) {
		return nil, fmt.Errorf("%d weights for %d samples: %w", len(weights), len(samples), common.ErrorInvalidValue)
	}

	pairs := make([]sample, 0, len(samples))
	for i, x := range samples {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		if !utils.IsFinite(x) || !utils.IsFinite(w) || w <= 0 {
			continue
		}
		pairs = append(pairs, sample{x: x, w: w})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no positive weight: %w", common.ErrorInvalidValue)
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].x < pairs[j].x
	})

	xs := make([]float64, len(pairs))
	ws := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i], ws[i] = p.x, p.w
	}

	if !(adjust > 0) {
		adjust = 1
	}
	kernel := NewGaussianKernel()
	bw := NormalReference(kernel, xs, ws) * adjust
	if !utils.IsFinite(bw) || bw <= 0 {
		return nil, fmt.Errorf("degenerate bandwidth %v: %w", bw, common.ErrorInvalidValue)
	}

	return &Estimator{
		samples: xs,
		weights: ws,
		total:   floats.Sum(ws),
		bw:      bw,
		kernel:  kernel,
	}, nil
}

func (e *Estimator) Bandwidth() float64 {
	return e.bw
}

// Density is the estimated probability density at x.
func (e *Estimator) Density(x float64) float64 {
	var sum float64
	for i, xi := range e.samples {
		sum += e.kernel.Shape((xi-x)/e.bw) * e.weights[i]
	}
	return sum / (e.total * e.bw)
}

func (e *Estimator) Evaluate(grid []float64) []float64 {
	res := make([]float64, len(grid))
	for i, x := range grid {
		res[i] = e.Density(x)
	}
	return res
}
