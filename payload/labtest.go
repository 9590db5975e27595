package payload

import (
	"math"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

// MissingLabValue marks a missing measurement in a labtest row.
const MissingLabValue = 9999

// Labtest is the per patient lab matrix. Each row is
// `[ageIndex, ..., value, ..., concept]`: the first entry indexes Ages, the
// value sits at position 2 and the concept name is the last entry.
type Labtest struct {
	Ages     []gjson.Result
	Rows     []gjson.Result
	Concepts []string
	// Valid is false when the ages or data arrays are missing.
	Valid    bool
}

func DecodeLabtest(raw []byte) (Labtest, error) {
	doc, err := parse(raw, "labtest")
	if err != nil {
		return Labtest{}, err
	}
	return NewLabtest(doc), nil
}

func NewLabtest(doc gjson.Result) Labtest {
	res := Labtest{Concepts: []string{}}
	if concepts := doc.Get("concepts"); concepts.IsArray() {
		for _, c := range concepts.Array() {
			res.Concepts = append(res.Concepts, c.String())
		}
	}
	ages, data := doc.Get("ages"), doc.Get("data")
	if !ages.IsArray() || !data.IsArray() {
		return res
	}
	res.Ages = ages.Array()
	res.Rows = data.Array()
	res.Valid = true
	return res
}

// HasConcept reports whether concept is in the concept list.
func (l *Labtest) HasConcept(concept string) bool {
	for _, c := range l.Concepts {
		if c == concept {
			return true
		}
	}
	return false
}

// SeriesFor extracts the measurements of one concept sorted by age. Rows
// whose age index does not resolve, or without any usable value, are skipped.
func (l *Labtest) SeriesFor(concept string) []model.TimePoint {
	res := []model.TimePoint{}
	if !l.Valid {
		return res
	}
	for _, row := range l.Rows {
		cells := row.Array()
		if len(cells) == 0 {
			continue
		}
		name := cells[len(cells)-1]
		if name.Type != gjson.String || name.Str != concept {
			continue
		}
		age, ok := l.ageAt(cells[0])
		if !ok {
			continue
		}
		value, ok := labValue(cells)
		if !ok {
			continue
		}
		res = append(res, model.TimePoint{Key: age, Value: value})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Less(res[j])
	})
	return res
}

func (l *Labtest) ageAt(cell gjson.Result) (float64, bool) {
	idx := Number(cell)
	if !utils.IsFinite(idx) || idx != math.Trunc(idx) || idx < 0 || idx >= float64(len(l.Ages)) {
		return 0, false
	}
	age := Number(l.Ages[int(idx)])
	return age, utils.IsFinite(age)
}

// labValue reads the value at position 2. A missing or sentinel value falls
// back to the upper median of the other numbers in the row.
func labValue(cells []gjson.Result) (float64, bool) {
	if len(cells) > 2 {
		if v := Number(cells[2]); usableLabValue(v) {
			return v, true
		}
	}
	candidates := make([]float64, 0, len(cells))
	for _, cell := range cells[:len(cells)-1] {
		if v := Number(cell); usableLabValue(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.Float64s(candidates)
	return candidates[len(candidates)/2], true
}

func usableLabValue(v float64) bool {
	return utils.IsFinite(v) && math.Abs(v) != MissingLabValue
}
