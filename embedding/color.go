package embedding

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/uyouii/trajvis/common"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

const (
	lowerQuantile = 0.05
	upperQuantile = 0.95
	domainBuffer  = 0.05
	DefaultGamma  = 0.7
	GradientStops = 256
	fallbackColor = "#999999"
)

// ColorDomain bounds the color scale by the 5th and 95th percentile of the
// finite values, widened by 5% of that range on both sides. Without finite
// values fallback is returned.
func ColorDomain(values []float64, fallback model.Domain) model.Domain {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if utils.IsFinite(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return fallback
	}
	sort.Float64s(sorted)

	n := float64(len(sorted))
	q05 := sorted[int(math.Floor(lowerQuantile*n))]
	q95 := sorted[int(math.Floor(upperQuantile*n))]
	buffer := (q95 - q05) * domainBuffer

	return model.Domain{Min: q05 - buffer, Max: q95 + buffer}
}

// Ramp is a piecewise linear RGB color ramp over equally spaced stops.
// Gamma is applied to t before the lookup.
type Ramp struct {
	stops []colorful.Color
	gamma float64
}

func NewRamp(hexStops []string, gamma float64) (Ramp, error) {
	if len(hexStops) == 0 {
		return Ramp{}, common.ErrorInvalidValue
	}
	stops := make([]colorful.Color, 0, len(hexStops))
	for _, hex := range hexStops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return Ramp{}, err
		}
		stops = append(stops, c)
	}
	if !(gamma > 0) {
		gamma = 1
	}
	return Ramp{stops: stops, gamma: gamma}, nil
}

// FlatRamp is used for attributes without a configured ramp.
func FlatRamp() Ramp {
	c, _ := colorful.Hex(fallbackColor)
	return Ramp{stops: []colorful.Color{c}, gamma: 1}
}

// At returns the color for t in [0, 1], t outside is clamped.
func (r Ramp) At(t float64) colorful.Color {
	if len(r.stops) == 0 {
		return FlatRamp().At(t)
	}
	t = utils.Clamp01(t)
	tg := math.Pow(t, r.gamma)
	if len(r.stops) == 1 {
		return r.stops[0]
	}

	segments := float64(len(r.stops) - 1)
	pos := tg * segments
	idx := int(math.Floor(pos))
	if idx >= len(r.stops)-1 {
		return r.stops[len(r.stops)-1]
	}
	return r.stops[idx].BlendRgb(r.stops[idx+1], pos-float64(idx)).Clamped()
}

func (r Ramp) Hex(t float64) string {
	return r.At(t).Hex()
}

// Gradient samples the ramp at n evenly spaced points, for the color bar.
func (r Ramp) Gradient(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n == 1 {
		return []string{r.Hex(0)}
	}
	res := make([]string, n)
	for i := 0; i < n; i++ {
		res[i] = r.Hex(float64(i) / float64(n-1))
	}
	return res
}

// Colorizer maps attribute values to colors within a fixed domain.
type Colorizer struct {
	Domain model.Domain
	Ramp   Ramp
	Gamma  float64
}

// Color returns the color of v. Non-finite values and values outside the
// domain are not drawn, ok is false for them.
func (c Colorizer) Color(v float64) (string, bool) {
	if !utils.IsFinite(v) || !c.Domain.Contains(v) {
		return "", false
	}
	gamma := c.Gamma
	if !(gamma > 0) {
		gamma = DefaultGamma
	}
	t := (v - c.Domain.Min) / math.Max(Epsilon, c.Domain.Max-c.Domain.Min)
	return c.Ramp.Hex(math.Pow(t, gamma)), true
}
