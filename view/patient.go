package view

import (
	"context"

	"github.com/uyouii/trajvis/indicator"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/series"
	"github.com/uyouii/trajvis/utils"
	"go.uber.org/zap"
)

const (
	DefaultLeftMetric  = "EGFR"
	DefaultRightMetric = "BP_SYSTOLIC"

	LeftColumn  = "left"
	RightColumn = "right"
)

type ConceptOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Metric struct {
	Concept string `json:"concept"`
	Label   string `json:"label"`
}

type PatientPanel struct {
	Summary   payload.PatientSummary `json:"summary"`
	Concepts  []ConceptOption        `json:"concepts"`
	Left      Metric                 `json:"left"`
	Right     Metric                 `json:"right"`
	Chart     model.MergedTable      `json:"chart"`
	HasSeries bool                   `json:"has_series"`
}

// BuildPatient composes the patient card and the two metric lab chart.
// A metric missing from the labtest concepts is replaced by the first, or
// for the right one the second, available concept.
func BuildPatient(ctx context.Context, bundle *payload.PatientBundle, lab *payload.Labtest,
	left, right string, labels indicator.Labels) (panel PatientPanel) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("BuildPatient recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
			panel = PatientPanel{
				Concepts: []ConceptOption{},
				Chart:    model.MergedTable{Names: []string{LeftColumn, RightColumn}, Rows: []model.MergedRow{}},
			}
		}
	}()

	if bundle != nil {
		panel.Summary = bundle.Summary()
	} else {
		panel.Summary = (&payload.PatientBundle{}).Summary()
	}
	if lab == nil {
		lab = &payload.Labtest{}
	}
	if left == "" {
		left = DefaultLeftMetric
	}
	if right == "" {
		right = DefaultRightMetric
	}

	panel.Concepts = make([]ConceptOption, 0, len(lab.Concepts))
	for _, code := range lab.Concepts {
		panel.Concepts = append(panel.Concepts, ConceptOption{Value: code, Label: labels.WithUnit(code)})
	}

	if n := len(lab.Concepts); n > 0 {
		if !lab.HasConcept(left) {
			logger.Info("left metric not available", zap.String("metric", left), zap.String("use", lab.Concepts[0]))
			left = lab.Concepts[0]
		}
		if !lab.HasConcept(right) {
			use := lab.Concepts[min(1, n-1)]
			logger.Info("right metric not available", zap.String("metric", right), zap.String("use", use))
			right = use
		}
	}
	panel.Left = Metric{Concept: left, Label: labels.WithUnit(left)}
	panel.Right = Metric{Concept: right, Label: labels.WithUnit(right)}

	panel.Chart = series.Merge(
		model.NamedSeries{Name: LeftColumn, Points: lab.SeriesFor(left)},
		model.NamedSeries{Name: RightColumn, Points: lab.SeriesFor(right)},
	)
	panel.HasSeries = panel.Chart.HasValues()
	return panel
}
