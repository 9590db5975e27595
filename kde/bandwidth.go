package kde

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// iqrNormalize turns an interquartile range into a normal standard deviation.
const iqrNormalize = 1.349

// NormalReference is the rule of thumb bandwidth C * A * n^(-1/5), where A is
// the smaller of the standard deviation and the normalized interquartile
// range. x must be sorted ascending, weights count as repeated samples and
// may be nil.
func NormalReference(kernel Kernel, x, weights []float64) float64 {
	if kernel == nil {
		kernel = NewGaussianKernel()
	}
	n := float64(len(x))
	if weights != nil {
		n = floats.Sum(weights)
	}
	return kernel.NormalReferenceConstant() * selectSigma(x, weights) * math.Pow(n, -0.2)
}

func selectSigma(x, weights []float64) float64 {
	q75 := stat.Quantile(0.75, stat.Empirical, x, weights)
	q25 := stat.Quantile(0.25, stat.Empirical, x, weights)
	iqr := (q75 - q25) / iqrNormalize

	stdDev := stat.StdDev(x, weights)

	if iqr > 0 && iqr < stdDev {
		return iqr
	}
	return stdDev
}
