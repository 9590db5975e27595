package density

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

type Hint string

const (
	EGFRHint Hint = "egfr"
	AgeHint  Hint = "age"
)

// ParseHint maps a concept name like "EGFR" or "age" to a fallback hint.
func ParseHint(s string) Hint {
	if strings.EqualFold(strings.TrimSpace(s), string(EGFRHint)) {
		return EGFRHint
	}
	return AgeHint
}

type bump struct {
	height float64
	center float64
	width  float64
}

type fallbackShape struct {
	maxX   int
	bumps  []bump
	jitter float64 // half width of the uniform noise
}

var (
	egfrShape = fallbackShape{
		maxX: 150,
		bumps: []bump{
			{height: 5000, center: 70, width: 22},
			{height: 1700, center: 18, width: 6},
		},
		jitter: 40,
	}
	ageShape = fallbackShape{
		maxX:   110,
		bumps:  []bump{{height: 10000, center: 62, width: 14}},
		jitter: 60,
	}
)

// Fallback generates a synthetic histogram for panels without backend data.
// The noise is cosmetic, a nil src gives the smooth curve.
func Fallback(hint Hint, src rand.Source) model.DensitySeries {
	shape := ageShape
	if hint == EGFRHint {
		shape = egfrShape
	}

	var noise *distuv.Uniform
	if src != nil {
		noise = &distuv.Uniform{Min: -shape.jitter, Max: shape.jitter, Src: src}
	}

	rows := make([]model.DensityPoint, 0, shape.maxX+1)
	for x := 0; x <= shape.maxX; x++ {
		y := 0.0
		for _, b := range shape.bumps {
			z := (float64(x) - b.center) / b.width
			y += b.height * math.Exp(-z*z)
		}
		if noise != nil {
			y += noise.Rand()
		}
		rows = append(rows, model.DensityPoint{X: float64(x), Y: math.Max(0, math.Round(y))})
	}
	return model.DensitySeries{Kind: model.HistDensity, Rows: rows}
}

// Resolve parses doc and falls back to the synthetic distribution when the
// parsed rows are empty or all zero. The bool reports whether the fallback
// was used.
func Resolve(doc gjson.Result, hint Hint, src rand.Source) (model.DensitySeries, bool) {
	parsed := Parse(doc)
	if parsed.IsEmpty() || IsAllZero(parsed.Rows) {
		return Fallback(hint, src), true
	}
	return parsed, false
}
