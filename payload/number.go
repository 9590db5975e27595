package payload

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Number coerces a json value to a float. Numbers and numeric strings parse,
// everything else is NaN.
func Number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// Array promotes v to a list: arrays are returned as is, null and missing
// values become empty, anything else is a one-element list.
func Array(v gjson.Result) []gjson.Result {
	if !v.Exists() || v.Type == gjson.Null {
		return []gjson.Result{}
	}
	if v.IsArray() {
		return v.Array()
	}
	return []gjson.Result{v}
}

// Numbers maps Number over Array(v).
func Numbers(v gjson.Result) []float64 {
	items := Array(v)
	res := make([]float64, len(items))
	for i, item := range items {
		res[i] = Number(item)
	}
	return res
}
