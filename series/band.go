package series

import (
	"math"
	"sort"

	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

// BuildBands turns (key, y1, y2) triplets into lower/gap rows sorted by key.
// Triplets with a non-finite value or gap are dropped.
//
// When minKey is valid and the data starts after it, a row at minKey copying
// the first row is prepended so the band starts at the same left edge as the
// line it annotates. Repeated keys keep the last row.
func BuildBands(triplets []model.Triplet, minKey model.NullFloat) []model.Band {
	rows := make([]model.Band, 0, len(triplets))
	for _, t := range triplets {
		if !utils.IsFinite(t.Key) || !utils.IsFinite(t.Y1) || !utils.IsFinite(t.Y2) {
			continue
		}
		lower := math.Min(t.Y1, t.Y2)
		gap := math.Max(t.Y1, t.Y2) - lower
		if !utils.IsFinite(gap) {
			continue
		}
		rows = append(rows, model.Band{Key: t.Key, Lower: lower, Gap: gap})
	}
	if len(rows) == 0 {
		return rows
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})

	if minKey.Valid && utils.IsFinite(minKey.Value) && rows[0].Key > minKey.Value {
		first := rows[0]
		rows = append([]model.Band{{Key: minKey.Value, Lower: first.Lower, Gap: first.Gap}}, rows...)
	}

	return dedupBands(rows)
}

func dedupBands(rows []model.Band) []model.Band {
	byKey := make(map[float64]model.Band, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row
	}

	res := make([]model.Band, 0, len(byKey))
	for _, row := range byKey {
		res = append(res, row)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Key < res[j].Key
	})
	return res
}
