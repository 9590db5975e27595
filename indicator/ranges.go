package indicator

import "github.com/uyouii/trajvis/model"

// Range is the inclusive normal range of one concept.
type Range struct {
	Low  float64 `mapstructure:"low" json:"low"`
	High float64 `mapstructure:"high" json:"high"`
}

// NormalRanges is keyed by concept code, e.g. "EGFR".
type NormalRanges map[string]Range

func DefaultNormalRanges() NormalRanges {
	return NormalRanges{
		"EGFR":            {Low: 60, High: 200},
		"TBIL":            {Low: 0.1, High: 1.2},
		"BP_DIASTOLIC":    {Low: 60, High: 80},
		"BP_SYSTOLIC":     {Low: 90, High: 120},
		"WT":              {Low: 90, High: 220},
		"HT":              {Low: 57, High: 78},
		"CHOLESTEROL":     {Low: 50, High: 200},
		"CREATINE_KINASE": {Low: 22, High: 198},
		"HEMOGLOBIN":      {Low: 11.6, High: 17.2},
		"INR":             {Low: 0.8, High: 1.1},
		"ALT_SGPT":        {Low: 7, High: 56},
		"AST_SGOT":        {Low: 8, High: 45},
		"ALK":             {Low: 44, High: 147},
		"HDL":             {Low: 40, High: 100},
		"LDL":             {Low: 40, High: 100},
		"TRIGLYCERIDES":   {Low: 20, High: 150},
		"HBA1C":           {Low: 4, High: 6.5},
		"TROPONIN":        {Low: 0, High: 0.04},
	}
}

// Classify compares value against the range of its concept. A concept
// without a range is always normal.
func (r NormalRanges) Classify(concept string, value float64) model.IndicatorClass {
	rng, ok := r[concept]
	if !ok {
		return model.NormalClass
	}
	switch {
	case value > rng.High:
		return model.AboveClass
	case value < rng.Low:
		return model.UnderClass
	default:
		return model.NormalClass
	}
}
