package prob

import (
	"math"

	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultStartAge = 19
	DefaultEndAge   = 80
)

// zipRows zips the parallel arrays up to the shortest one. Non-finite class
// values become 0, keys are kept as they are.
func zipRows(in model.ProbabilityInput) []rawRow {
	n := in.Len()
	res := make([]rawRow, n)
	for i := 0; i < n; i++ {
		res[i] = rawRow{
			key: in.Keys[i],
			values: [3]float64{
				utils.FiniteOr(in.FastCKD[i], 0),
				utils.FiniteOr(in.CKD[i], 0),
				utils.FiniteOr(in.Healthy[i], 0),
			},
		}
	}
	return res
}

type rawRow struct {
	key    float64
	values [3]float64
}

// pad returns one row per integer age in [start, end]. Ages missing from the
// input copy the first input row, raw keys are matched after rounding.
// Empty input stays empty.
func pad(rows []rawRow, start, end int) []rawRow {
	if len(rows) == 0 {
		return []rawRow{}
	}

	byAge := make(map[int]rawRow, len(rows))
	for _, row := range rows {
		if !utils.IsFinite(row.key) {
			continue
		}
		byAge[int(roundHalfUp(row.key))] = row
	}

	first := rows[0]
	res := make([]rawRow, 0, max(end-start+1, 0))
	for age := start; age <= end; age++ {
		row, ok := byAge[age]
		if !ok {
			row = first
		}
		res = append(res, rawRow{key: float64(age), values: row.values})
	}
	return res
}

// Normalize pads the probabilities to [start, end] and turns every row into
// a distribution: components are clamped to [0, 1] and divided by their sum,
// an all-zero row becomes uniform.
func Normalize(in model.ProbabilityInput, start, end int) []model.ProbabilityRow {
	padded := pad(zipRows(in), start, end)

	res := make([]model.ProbabilityRow, 0, len(padded))
	for _, row := range padded {
		values := normalizeValues(row.values)
		res = append(res, model.ProbabilityRow{
			Age:     int(row.key),
			FastCKD: values[0],
			CKD:     values[1],
			Healthy: values[2],
		})
	}
	return res
}

func normalizeValues(values [3]float64) [3]float64 {
	clamped := make([]float64, len(values))
	for i, v := range values {
		clamped[i] = utils.Clamp01(v)
	}

	sum := floats.Sum(clamped)
	if sum <= 0 {
		return [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}
	return [3]float64{clamped[0] / sum, clamped[1] / sum, clamped[2] / sum}
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}
