package payload

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/common"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

const (
	notAvailable = "N/A"
	noValue      = "—"
)

// PatientBundle is the per patient document, every field already normalized
// to a list of records.
type PatientBundle struct {
	Demo    []gjson.Result
	Records []gjson.Result
	Risk    []gjson.Result
	Labtest []gjson.Result
}

type PatientSummary struct {
	Gender       string `json:"gender"`
	Race         string `json:"race"`
	Age          string `json:"age"`
	EGFR         string `json:"egfr"`
	ACR          string `json:"acr"`
	TwoYearRisk  string `json:"two_year_risk"`
	FiveYearRisk string `json:"five_year_risk"`
	BirthDate    string `json:"dob"`
	LastVisit    string `json:"last_visit"`
}

func parse(raw []byte, what string) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%s: %w", what, common.ErrorInvalidPayload)
	}
	return gjson.ParseBytes(raw), nil
}

func DecodePatient(raw []byte) (PatientBundle, error) {
	doc, err := parse(raw, "patient")
	if err != nil {
		return PatientBundle{}, err
	}
	return PatientBundle{
		Demo:    Records(doc.Get("demo")),
		Records: Records(doc.Get("records")),
		Risk:    Records(doc.Get("risk")),
		Labtest: Records(doc.Get("labtest")),
	}, nil
}

// Observations extracts the clinical events of the records list. Records
// without a concept, with a non-finite value or with an age outside
// [model.MinAge, model.MaxAge] are skipped, ages are truncated toward zero.
func (b *PatientBundle) Observations() []model.Observation {
	res := make([]model.Observation, 0, len(b.Records))
	for _, item := range b.Records {
		rec := NewRecord(item)
		age := math.Trunc(rec.Number(AgeAttr))
		value := rec.Number(ValueAttr)
		concept := ""
		if v, ok := rec.Lookup(ConceptAttr); ok {
			concept = strings.TrimSpace(v.String())
		}
		if concept == "" || !utils.IsFinite(age) || !utils.IsFinite(value) {
			continue
		}
		if age < model.MinAge || age > model.MaxAge {
			continue
		}
		res = append(res, model.Observation{Age: int(age), Concept: concept, Value: value})
	}
	return res
}

// Summary builds the demographic and risk card from the first record of
// each list.
func (b *PatientBundle) Summary() PatientSummary {
	demo := first(b.Demo)
	record := first(b.Records)
	risk := first(b.Risk)

	age := notAvailable
	if v, ok := record.Lookup(AgeAttr); ok {
		if f := Number(v); utils.IsFinite(f) {
			age = strconv.FormatFloat(f, 'f', 1, 64)
		}
	}

	return PatientSummary{
		Gender:       genderLabel(demo.String(SexAttr, notAvailable)),
		Race:         raceLabel(demo.String(RaceAttr, notAvailable)),
		Age:          age,
		EGFR:         risk.String(EGFRAttr, notAvailable),
		ACR:          risk.String(ACRAttr, notAvailable),
		TwoYearRisk:  risk.String(TwoYearAttr, notAvailable),
		FiveYearRisk: risk.String(FiveYearAttr, notAvailable),
		BirthDate:    demo.String(BirthDateAttr, noValue),
		LastVisit:    record.String(LastVisitAttr, noValue),
	}
}

func first(items []gjson.Result) Record {
	if len(items) == 0 {
		return Record{}
	}
	return NewRecord(items[0])
}

func genderLabel(code string) string {
	switch strings.ToUpper(code) {
	case "M":
		return "Male"
	case "F":
		return "Female"
	default:
		return code
	}
}

func raceLabel(code string) string {
	switch code {
	case "W":
		return "White"
	case "B":
		return "Black"
	default:
		return code
	}
}

// DecodePatientList reads the `{"data": [id, ...]}` listing of patient ids.
func DecodePatientList(raw []byte) ([]string, error) {
	doc, err := parse(raw, "patient list")
	if err != nil {
		return nil, err
	}
	items := Array(doc.Get("data"))
	res := make([]string, 0, len(items))
	for _, item := range items {
		if id := item.String(); id != "" {
			res = append(res, id)
		}
	}
	return res, nil
}
