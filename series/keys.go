package series

import (
	"sort"

	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

// Points keeps the finite pairs of pairs sorted by key. Pairs with the same
// key keep their input order.
func Points(pairs []model.TimePoint) []model.TimePoint {
	res := make([]model.TimePoint, 0, len(pairs))
	for _, p := range pairs {
		if !utils.IsFinite(p.Key) || !utils.IsFinite(p.Value) {
			continue
		}
		res = append(res, p)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Less(res[j])
	})
	return res
}

// keyIndex maps each key to its value, the last occurrence wins.
func keyIndex(points []model.TimePoint) map[float64]float64 {
	res := make(map[float64]float64, len(points))
	for _, p := range points {
		res[p.Key] = p.Value
	}
	return res
}

func sortedKeys(set map[float64]struct{}) []float64 {
	res := make([]float64, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	sort.Float64s(res)
	return res
}
