package prob

import (
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

// DominantByAge picks the most likely class per rounded age from the raw,
// un-normalized probabilities. Ties prefer fast, then ckd. The first row of
// an age wins, the result keeps input order.
func DominantByAge(in model.ProbabilityInput) []model.AgeClass {
	rows := zipRows(in)
	seen := make(map[int]struct{}, len(rows))
	res := make([]model.AgeClass, 0, len(rows))

	for _, row := range rows {
		if !utils.IsFinite(row.key) {
			continue
		}
		age := int(roundHalfUp(row.key))
		if _, ok := seen[age]; ok {
			continue
		}
		seen[age] = struct{}{}
		res = append(res, model.AgeClass{Age: age, Class: dominant(row.values)})
	}
	return res
}

func dominant(values [3]float64) model.TrajectoryClass {
	fast, ckd, healthy := values[0], values[1], values[2]
	best := max(fast, ckd, healthy)
	switch best {
	case fast:
		return model.FastCKDClass
	case ckd:
		return model.CKDClass
	default:
		return model.HealthyClass
	}
}
