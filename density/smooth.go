package density

import (
	"math"

	"github.com/uyouii/trajvis/kde"
	"github.com/uyouii/trajvis/model"
	"gonum.org/v1/gonum/floats"
)

// Smooth replaces a distribution by its weighted kernel density estimate,
// evaluated at the same x positions and scaled back to the original total.
// adjust multiplies the rule of thumb bandwidth. Distributions that cannot
// be estimated, like a single bin, are returned unchanged.
func Smooth(s model.DensitySeries, adjust float64) model.DensitySeries {
	if s.IsEmpty() {
		return s
	}

	xs := make([]float64, len(s.Rows))
	ws := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		xs[i] = row.X
		ws[i] = max(row.Y, 0)
	}

	total := floats.Sum(ws)
	if math.IsInf(total, 0) {
		return s
	}

	estimator, err := kde.New(xs, ws, adjust)
	if err != nil {
		return s
	}
	dens := estimator.Evaluate(xs)
	sum := floats.Sum(dens)
	if !(sum > 0) {
		return s
	}
	floats.Scale(total/sum, dens)

	rows := make([]model.DensityPoint, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = model.DensityPoint{X: row.X, Y: dens[i]}
	}
	return model.DensitySeries{Kind: model.SeriesDensity, Rows: rows}
}
