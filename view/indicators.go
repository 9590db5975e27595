package view

import (
	"context"

	"github.com/uyouii/trajvis/config"
	"github.com/uyouii/trajvis/indicator"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/prob"
	"github.com/uyouii/trajvis/utils"
	"go.uber.org/zap"
)

type IndicatorPanel struct {
	Matrix  model.IndicatorMatrix   `json:"matrix"`
	// Labels are the display names of Matrix.Concepts.
	Labels  []string                `json:"labels"`
	// Columns is the dominant trajectory class of each age, "" when unknown.
	Columns []model.TrajectoryClass `json:"columns"`
}

func emptyIndicators() IndicatorPanel {
	return IndicatorPanel{
		Matrix:  model.IndicatorMatrix{Ages: []int{}, Concepts: []string{}, Cells: []model.IndicatorCell{}},
		Labels:  []string{},
		Columns: []model.TrajectoryClass{},
	}
}

// BuildIndicators aggregates the patient records into the indicator matrix.
// analysis may be nil, the columns then carry no trajectory class.
func BuildIndicators(ctx context.Context, bundle *payload.PatientBundle, analysis *payload.AnalysisBundle,
	cfg *config.Config) (panel IndicatorPanel) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("BuildIndicators recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
			panel = emptyIndicators()
		}
	}()

	if bundle == nil {
		return emptyIndicators()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	observations := bundle.Observations()
	if dropped := len(bundle.Records) - len(observations); dropped > 0 {
		logger.Info("skip unusable records", zap.Int("dropped", dropped), zap.Int("kept", len(observations)))
	}

	matrix := indicator.Aggregate(observations, cfg.Indicator.NormalRanges)
	if matrix.IsEmpty() {
		return emptyIndicators()
	}

	labels := cfg.Indicator.Labels()
	panel = IndicatorPanel{
		Matrix: matrix,
		Labels: make([]string, len(matrix.Concepts)),
	}
	for i, concept := range matrix.Concepts {
		panel.Labels[i] = labels.Name(concept)
	}

	var dominant []model.AgeClass
	if analysis != nil {
		dominant = prob.DominantByAge(analysis.Probabilities)
	}
	panel.Columns = indicator.ColumnClasses(matrix.Ages, dominant)
	return panel
}
