package indicator

import (
	"strings"
	"unicode"
)

// Labels holds the display names and units of concept codes.
type Labels struct {
	Names map[string]string
	Units map[string]string
}

func DefaultLabels() Labels {
	return Labels{
		Names: map[string]string{
			"EGFR":                 "eGFR",
			"BP_SYSTOLIC":          "BP Systolic",
			"BP_DIASTOLIC":         "BP Diastolic",
			"HBA1C":                "Hemoglobin A1C",
			"HEMOGLOBIN":           "Hemoglobin",
			"ALKALINE_PHOSPHATASE": "Alkaline Phosphatase",
			"ALK":                  "Alkaline Phosphatase",
			"ALT_SGPT":             "ALT SGPT",
			"AST_SGOT":             "AST SGOT",
			"CHOLESTEROL":          "Cholesterol",
			"LDL":                  "Low-Density Lipoprotein",
			"HDL":                  "High-Density Lipoprotein",
			"TRIGLYCERIDES":        "Triglycerides",
			"INR":                  "INR",
			"TBIL":                 "Total Bilirubin",
			"WT":                   "Weight",
			"HT":                   "Height",
			"CREATINE_KINASE":      "Creatine Kinase",
			"TROPONIN":             "Troponin",
		},
		Units: map[string]string{
			"EGFR":                 "mL/min/1.73m²",
			"BP_SYSTOLIC":          "mmHg",
			"BP_DIASTOLIC":         "mmHg",
			"HBA1C":                "%",
			"HEMOGLOBIN":           "g/dL",
			"ALKALINE_PHOSPHATASE": "U/L",
			"ALK":                  "U/L",
			"ALT_SGPT":             "U/L",
			"AST_SGOT":             "U/L",
			"CHOLESTEROL":          "mg/dL",
			"LDL":                  "mg/dL",
			"HDL":                  "mg/dL",
			"TRIGLYCERIDES":        "mg/dL",
			"TBIL":                 "mg/dL",
			"WT":                   "kg",
			"CREATINE_KINASE":      "U/L",
			"TROPONIN":             "ng/L",
		},
	}
}

// Name returns the display name of code. Unknown codes have their
// underscores replaced and every word capitalized.
func (l Labels) Name(code string) string {
	if name, ok := l.Names[code]; ok {
		return name
	}
	return titleWords(strings.ReplaceAll(code, "_", " "))
}

func (l Labels) Unit(code string) string {
	return l.Units[code]
}

// WithUnit formats "Name (unit)", or just the name when there is no unit.
func (l Labels) WithUnit(code string) string {
	if unit := l.Unit(code); unit != "" {
		return l.Name(code) + " (" + unit + ")"
	}
	return l.Name(code)
}

func titleWords(s string) string {
	runes := []rune(s)
	start := true
	for i, r := range runes {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && start {
			runes[i] = unicode.ToUpper(r)
		}
		start = !isWord
	}
	return string(runes)
}
