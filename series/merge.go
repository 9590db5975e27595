package series

import (
	"github.com/uyouii/trajvis/model"
)

// Merge aligns every series on the sorted union of their finite keys. A series
// without a value at some key gets a missing cell there, never a zero. There
// is no interpolation.
func Merge(series ...model.NamedSeries) model.MergedTable {
	names := make([]string, len(series))
	indexes := make([]map[float64]float64, len(series))
	keySet := map[float64]struct{}{}

	for i, s := range series {
		names[i] = s.Name
		points := Points(s.Points)
		indexes[i] = keyIndex(points)
		for _, p := range points {
			keySet[p.Key] = struct{}{}
		}
	}

	keys := sortedKeys(keySet)
	rows := make([]model.MergedRow, 0, len(keys))
	for _, key := range keys {
		values := make([]model.NullFloat, len(series))
		for i := range series {
			if v, ok := indexes[i][key]; ok {
				values[i] = model.Float(v)
			}
		}
		rows = append(rows, model.MergedRow{Key: key, Values: values})
	}

	return model.MergedTable{
		Names: names,
		Rows:  rows,
	}
}
