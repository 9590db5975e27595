package view

import (
	"context"

	"github.com/uyouii/trajvis/config"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/prob"
	"github.com/uyouii/trajvis/series"
	"github.com/uyouii/trajvis/utils"
	"go.uber.org/zap"
)

// Column names of the merged trajectory table.
const (
	CKDColumn     = "CKD"
	FastCKDColumn = "FastCKD"
	HealthyColumn = "Healthy"
)

type AnalysisPanel struct {
	Trajectories  model.MergedTable      `json:"trajectories"`
	CKDBand       []model.Band           `json:"ckd_band"`
	FastCKDBand   []model.Band           `json:"fast_ckd_band"`
	HealthyBand   []model.Band           `json:"healthy_band"`
	Probabilities []model.ProbabilityRow `json:"probabilities"`
	AgeLast       model.NullFloat        `json:"age_last"`
	Gender        []StackBar             `json:"gender"`
	Race          []StackBar             `json:"race"`
	GenderRings   Rings                  `json:"gender_rings"`
	RaceRings     Rings                  `json:"race_rings"`
}

func EmptyAnalysis() AnalysisPanel {
	return AnalysisPanel{
		Trajectories:  model.MergedTable{Names: []string{CKDColumn, FastCKDColumn, HealthyColumn}, Rows: []model.MergedRow{}},
		CKDBand:       []model.Band{},
		FastCKDBand:   []model.Band{},
		HealthyBand:   []model.Band{},
		Probabilities: []model.ProbabilityRow{},
		Gender:        []StackBar{},
		Race:          []StackBar{},
		GenderRings:   BuildRings(nil, GenderCategories),
		RaceRings:     BuildRings(nil, RaceCategories),
	}
}

// BuildAnalysis composes the population analysis panel of one patient.
// The bands are padded on the left to the first age of the trajectories.
func BuildAnalysis(ctx context.Context, bundle *payload.AnalysisBundle, cfg *config.Config) (panel AnalysisPanel) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("BuildAnalysis recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
			panel = EmptyAnalysis()
		}
	}()

	if bundle == nil {
		logger.Warn("analysis bundle is empty")
		return EmptyAnalysis()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	table := series.Merge(
		model.NamedSeries{Name: CKDColumn, Points: bundle.Blue},
		model.NamedSeries{Name: FastCKDColumn, Points: bundle.Orange},
		model.NamedSeries{Name: HealthyColumn, Points: bundle.Green},
	)

	minAge := model.NullFloat{}
	if len(table.Rows) > 0 {
		minAge = model.Float(table.Rows[0].Key)
	}

	probs := prob.Normalize(bundle.Probabilities, cfg.Probability.StartAge, cfg.Probability.EndAge)
	if len(probs) == 0 {
		logger.Info("no probability rows", zap.Int("keys", len(bundle.Probabilities.Keys)))
	}

	panel = AnalysisPanel{
		Trajectories:  table,
		CKDBand:       series.BuildBands(bundle.BlueArea, minAge),
		FastCKDBand:   series.BuildBands(bundle.OrangeArea, minAge),
		HealthyBand:   series.BuildBands(bundle.GreenArea, minAge),
		Probabilities: probs,
		AgeLast:       bundle.AgeLast,
		Gender:        StackBars(bundle.SexDist, GenderCategories),
		Race:          StackBars(bundle.RaceDist, RaceCategories),
		GenderRings:   BuildRings(bundle.SexDist, GenderCategories),
		RaceRings:     BuildRings(bundle.RaceDist, RaceCategories),
	}

	logger.Debug("analysis panel built", zap.Int("ages", len(table.Rows)),
		zap.Int("probabilities", len(probs)), zap.Bool("ageLast", bundle.AgeLast.Valid))
	return panel
}
