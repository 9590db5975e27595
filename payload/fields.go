package payload

import (
	"math"

	"github.com/tidwall/gjson"
)

type Attribute string

const (
	AgeAttr       Attribute = "age"
	ConceptAttr   Attribute = "concept"
	ValueAttr     Attribute = "value"
	SexAttr       Attribute = "sex"
	RaceAttr      Attribute = "race"
	EGFRAttr      Attribute = "egfr"
	ACRAttr       Attribute = "acr"
	FiveYearAttr  Attribute = "five_year_risk"
	TwoYearAttr   Attribute = "two_year_risk"
	BirthDateAttr Attribute = "dob"
	LastVisitAttr Attribute = "last_visit"
)

// fieldNames lists the accepted spellings of each attribute, the first one
// present and not null wins.
var fieldNames = map[Attribute][]string{
	AgeAttr:       {"age", "Age", "AGE"},
	ConceptAttr:   {"concept.cd", "concept_cd", "concept"},
	ValueAttr:     {"nval.num", "nval_num", "value", "val"},
	SexAttr:       {"sex_cd", "sex"},
	RaceAttr:      {"race_cd", "race"},
	EGFRAttr:      {"eGFR", "egfr"},
	ACRAttr:       {"ACR", "acr"},
	FiveYearAttr:  {"fiveyear", "fiveryear", "5year"},
	TwoYearAttr:   {"twoyear", "two_year", "2year"},
	BirthDateAttr: {"dob", "DoB"},
	LastVisitAttr: {"last_visit", "lastVisit"},
}

// FieldNames returns a copy of the spellings accepted for attr.
func FieldNames(attr Attribute) []string {
	return append([]string(nil), fieldNames[attr]...)
}

// Record is one json object indexed by its top level keys. Keys are matched
// literally, "concept.cd" is a single key and not a path.
type Record map[string]gjson.Result

func NewRecord(v gjson.Result) Record {
	v = parseString(v)
	if !v.IsObject() {
		return Record{}
	}
	return Record(v.Map())
}

func (r Record) Lookup(attr Attribute) (gjson.Result, bool) {
	for _, name := range fieldNames[attr] {
		if v, ok := r[name]; ok && v.Type != gjson.Null {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// Number is the numeric value of attr, NaN when absent or not numeric.
func (r Record) Number(attr Attribute) float64 {
	v, ok := r.Lookup(attr)
	if !ok {
		return math.NaN()
	}
	return Number(v)
}

// String is the text of attr, def when absent.
func (r Record) String(attr Attribute, def string) string {
	v, ok := r.Lookup(attr)
	if !ok {
		return def
	}
	return v.String()
}
