package kde

import (
	"math"
)

type Kernel interface {
	Shape(u float64) float64
	NormalReferenceConstant() float64
}

type GaussianKernel struct {
	l2Norm                  float64
	kernelVar               float64
	order                   int
	normalReferenceConstant float64
}

func NewGaussianKernel() *GaussianKernel {
	return &GaussianKernel{
		l2Norm:    1.0 / (2.0 * math.Sqrt(math.Pi)),
		kernelVar: 1.0,
		order:     2,
	}
}

func (k *GaussianKernel) Shape(u float64) float64 {
	return 0.3989422804014327 * math.Exp(-u*u/2.0)
}

// NormalReferenceConstant is about 1.059 for the gaussian kernel.
func (k *GaussianKernel) NormalReferenceConstant() float64 {
	nu := k.order
	if k.normalReferenceConstant == 0 {
		numerator := math.Pow(math.Pi, 0.5) * math.Pow(factorial(nu), 3) * k.l2Norm
		denom := 2.0 * float64(nu) * factorial(2*nu) * math.Pow(k.moments(nu), 2)
		k.normalReferenceConstant = 2 * math.Pow(numerator/denom, 1.0/float64(2*nu+1))
	}
	return k.normalReferenceConstant
}

func (k *GaussianKernel) moments(n int) float64 {
	switch n {
	case 1:
		return 0
	case 2:
		return k.kernelVar
	default:
		return 1.0
	}
}

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}
