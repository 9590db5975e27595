package payload

import (
	"github.com/tidwall/gjson"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

// Trajectory groups as named by the analysis backend.
const (
	OrangeGroup = "orange"
	BlueGroup   = "blue"
	GreenGroup  = "green"
)

// Composition is one row of a demographic distribution, the shares of the
// two categories within a trajectory group, for example female and male.
type Composition struct {
	Group  string
	Shares [2]float64
}

type AnalysisBundle struct {
	SexDist  []Composition
	RaceDist []Composition

	// Blue is CKD, Orange is fast progression CKD, Green is healthy.
	Blue   []model.TimePoint
	Orange []model.TimePoint
	Green  []model.TimePoint

	BlueArea   []model.Triplet
	OrangeArea []model.Triplet
	GreenArea  []model.Triplet

	Probabilities model.ProbabilityInput
	AgeLast       model.NullFloat
}

func DecodeAnalysis(raw []byte) (AnalysisBundle, error) {
	doc, err := parse(raw, "analysis")
	if err != nil {
		return AnalysisBundle{}, err
	}

	res := AnalysisBundle{
		SexDist:    compositions(doc.Get("sex_dist")),
		RaceDist:   compositions(doc.Get("race_dist")),
		Blue:       pairs(doc.Get("traj.blue")),
		Orange:     pairs(doc.Get("traj.orange")),
		Green:      pairs(doc.Get("traj.green")),
		BlueArea:   triplets(doc.Get("blue_area")),
		OrangeArea: triplets(doc.Get("orange_area")),
		GreenArea:  triplets(doc.Get("green_area")),
		Probabilities: model.ProbabilityInput{
			Keys:    Numbers(doc.Get("x_range")),
			FastCKD: Numbers(doc.Get("orange_poss")),
			CKD:     Numbers(doc.Get("blue_poss")),
			Healthy: Numbers(doc.Get("green_poss")),
		},
	}
	if last := Number(doc.Get("age_last")); utils.IsFinite(last) {
		res.AgeLast = model.Float(last)
	}
	return res, nil
}

// pairs reads `[[key, value], ...]`. Non-finite entries are kept, the
// series package drops them.
func pairs(v gjson.Result) []model.TimePoint {
	items := Array(v)
	res := make([]model.TimePoint, 0, len(items))
	for _, item := range items {
		res = append(res, model.TimePoint{
			Key:   Number(item.Get("0")),
			Value: Number(item.Get("1")),
		})
	}
	return res
}

func triplets(v gjson.Result) []model.Triplet {
	items := Array(v)
	res := make([]model.Triplet, 0, len(items))
	for _, item := range items {
		res = append(res, model.Triplet{
			Key: Number(item.Get("0")),
			Y1:  Number(item.Get("1")),
			Y2:  Number(item.Get("2")),
		})
	}
	return res
}

// compositions reads `[[group, share1, share2], ...]`, missing or non-numeric
// shares are 0.
func compositions(v gjson.Result) []Composition {
	items := Array(v)
	res := make([]Composition, 0, len(items))
	for _, item := range items {
		res = append(res, Composition{
			Group: item.Get("0").String(),
			Shares: [2]float64{
				utils.FiniteOr(Number(item.Get("1")), 0),
				utils.FiniteOr(Number(item.Get("2")), 0),
			},
		})
	}
	return res
}
