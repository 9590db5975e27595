package density

import (
	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/utils"
)

// Parse reads a distribution payload in either the bin form {bins, counts} or
// the series-sum form {x_vals, y_vals: [[label, [values...]], ...]}.
// Unknown shapes and degenerate results are reported as an empty "none" series.
func Parse(doc gjson.Result) model.DensitySeries {
	if !doc.IsObject() {
		return model.EmptyDensity()
	}

	bins, counts := doc.Get("bins"), doc.Get("counts")
	if bins.IsArray() && counts.IsArray() {
		rows := parseBins(bins, counts)
		if !hasPositive(rows) {
			return model.EmptyDensity()
		}
		return model.DensitySeries{Kind: model.HistDensity, Rows: rows}
	}

	xs := payload.Numbers(doc.Get("x_vals"))
	blocks := payload.Array(doc.Get("y_vals"))
	if len(xs) > 0 && len(blocks) > 0 {
		rows := parseSeriesSum(xs, blocks)
		if len(rows) == 0 || IsAllZero(rows) {
			return model.EmptyDensity()
		}
		return model.DensitySeries{Kind: model.SeriesDensity, Rows: rows}
	}

	return model.EmptyDensity()
}

// ParseBytes parses raw json, invalid json is an unknown shape.
func ParseBytes(raw []byte) model.DensitySeries {
	if !gjson.ValidBytes(raw) {
		return model.EmptyDensity()
	}
	return Parse(gjson.ParseBytes(raw))
}

func parseBins(bins, counts gjson.Result) []model.DensityPoint {
	xs := payload.Numbers(bins)
	ys := payload.Numbers(counts)

	rows := make([]model.DensityPoint, 0, len(xs))
	for i, x := range xs {
		if !utils.IsFinite(x) {
			continue
		}
		y := 0.0
		if i < len(ys) {
			y = utils.FiniteOr(ys[i], 0)
		}
		rows = append(rows, model.DensityPoint{X: x, Y: y})
	}
	return rows
}

func parseSeriesSum(xs []float64, blocks []gjson.Result) []model.DensityPoint {
	values := make([][]float64, len(blocks))
	for i, block := range blocks {
		// each block is [label, [values...]]
		values[i] = payload.Numbers(block.Get("1"))
	}

	rows := make([]model.DensityPoint, 0, len(xs))
	for i, x := range xs {
		if !utils.IsFinite(x) {
			continue
		}
		sum := 0.0
		for _, ys := range values {
			if i < len(ys) && utils.IsFinite(ys[i]) {
				sum += ys[i]
			}
		}
		if !utils.IsFinite(sum) {
			continue
		}
		rows = append(rows, model.DensityPoint{X: x, Y: sum})
	}
	return rows
}

func hasPositive(rows []model.DensityPoint) bool {
	for _, row := range rows {
		if row.Y > 0 {
			return true
		}
	}
	return false
}

// IsAllZero reports whether rows is non-empty and every y is exactly zero.
func IsAllZero(rows []model.DensityPoint) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if row.Y != 0 {
			return false
		}
	}
	return true
}
