package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/exp/rand"

	"github.com/uyouii/trajvis/config"
	"github.com/uyouii/trajvis/density"
	"github.com/uyouii/trajvis/indicator"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/utils"
	"github.com/uyouii/trajvis/view"
)

const analysisJSON = `{
	"sex_dist": [["orange", 0.456, 0.544], ["blue", 0.5, 0.5], ["green", 0.7, 0.3]],
	"race_dist": [["blue", 0.25, 0.75]],
	"traj": {
		"blue": [[52, 80], [50, 82]],
		"orange": [[50, 70], [53, 60]],
		"green": [[51, 95]]
	},
	"blue_area": [[52, 85, 75]],
	"orange_area": [[50, 65, 75], [53, 55, 65]],
	"green_area": [],
	"x_range": [19, 20],
	"orange_poss": [0.2, 0.7],
	"blue_poss": [0.3, 0.2],
	"green_poss": [0.5, 0.1],
	"age_last": 53
}`

func decodeAnalysis(t *testing.T) payload.AnalysisBundle {
	t.Helper()
	b, err := payload.DecodeAnalysis([]byte(analysisJSON))
	require.NoError(t, err)
	return b
}

// TestBuildAnalysis merges trajectories and pads bands to the first age.
func TestBuildAnalysis(t *testing.T) {
	bundle := decodeAnalysis(t)
	panel := view.BuildAnalysis(context.Background(), &bundle, nil)

	assert.Equal(t, []string{view.CKDColumn, view.FastCKDColumn, view.HealthyColumn}, panel.Trajectories.Names)
	assert.Equal(t, []float64{50, 51, 52, 53}, panel.Trajectories.Keys())
	ckd, ok := panel.Trajectories.Column(view.CKDColumn)
	require.True(t, ok)
	assert.Equal(t, []model.NullFloat{model.Float(82), {}, model.Float(80), {}}, ckd)

	assert.Equal(t, []model.Band{
		{Key: 50, Lower: 75, Gap: 10},
		{Key: 52, Lower: 75, Gap: 10},
	}, panel.CKDBand)
	assert.Len(t, panel.FastCKDBand, 2, "first area key equals the first age, no padding")
	assert.Empty(t, panel.HealthyBand)

	require.Len(t, panel.Probabilities, 62)
	assert.Equal(t, 19, panel.Probabilities[0].Age)
	assert.Equal(t, 80, panel.Probabilities[61].Age)
	for _, row := range panel.Probabilities {
		assert.InDelta(t, 1.0, row.Sum(), 1e-9)
	}
	assert.Equal(t, model.Float(53), panel.AgeLast)

	require.Len(t, panel.Gender, 3)
	assert.Equal(t, "Fast CKD", panel.Gender[0].Group)
	assert.Equal(t, view.Segment{Name: "F", Value: 46}, panel.Gender[0].Segments[0])
	assert.Equal(t, view.Segment{Name: "M", Value: 54}, panel.Gender[0].Segments[1])
	assert.Equal(t, "Health", panel.Gender[2].Group)

	assert.Equal(t, view.Segment{Name: "Female", Value: 0.7}, panel.GenderRings.Outer[0])
	assert.Equal(t, view.Segment{Name: "White", Value: 0.75}, panel.RaceRings.Middle[1])
	assert.Equal(t, view.Segment{Name: "Black", Value: 0}, panel.RaceRings.Inner[0], "missing groups are zero")
}

// TestBuildAnalysis_CustomRange follows the configured probability range.
func TestBuildAnalysis_CustomRange(t *testing.T) {
	bundle := decodeAnalysis(t)
	cfg := config.Default()
	cfg.Probability.StartAge, cfg.Probability.EndAge = 19, 25

	panel := view.BuildAnalysis(context.Background(), &bundle, cfg)
	assert.Len(t, panel.Probabilities, 7)
}

// TestBuildAnalysis_Nil returns the empty panel.
func TestBuildAnalysis_Nil(t *testing.T) {
	panel := view.BuildAnalysis(context.Background(), nil, nil)
	assert.Empty(t, panel.Trajectories.Rows)
	assert.NotNil(t, panel.Probabilities)
	assert.False(t, panel.AgeLast.Valid)
}

// TestPopulationDensity falls back on malformed and degenerate payloads and logs it.
func TestPopulationDensity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := utils.WithLogger(context.Background(), zap.New(core))

	parsed := view.PopulationDensity(ctx, []byte(`{"bins":[1,2],"counts":[3,4]}`), density.AgeHint, nil)
	assert.Equal(t, model.HistDensity, parsed.Kind)
	assert.Len(t, parsed.Rows, 2)
	assert.Zero(t, logs.Len())

	broken := view.PopulationDensity(ctx, []byte(`{"bins":`), density.EGFRHint, rand.NewSource(1))
	assert.Len(t, broken.Rows, 151)
	assert.Equal(t, 1, logs.FilterMessage("invalid density payload").Len())
	assert.Equal(t, 1, logs.FilterMessage("use fallback density").Len())

	zero := view.PopulationDensity(ctx, []byte(`{"bins":[1,2],"counts":[0,0]}`), density.AgeHint, nil)
	assert.Len(t, zero.Rows, 111)
}

const patientJSON = `{
	"demo": [{"sex_cd": "M", "race_cd": "B"}],
	"records": [
		{"age": 50.2, "concept.cd": "EGFR", "nval.num": 55},
		{"age": 50.8, "concept.cd": "EGFR", "nval.num": 50},
		{"age": 52, "concept.cd": "HBA1C", "nval.num": 5.0},
		{"age": 52, "concept.cd": "EGFR", "nval.num": 70},
		{"age": 53, "concept.cd": "", "nval.num": 1}
	],
	"risk": {"eGFR": 55}
}`

const labtestJSON = `{
	"ages": [50, 51, 52],
	"concepts": ["HBA1C", "LDL"],
	"data": [
		[0, 0, 6.1, "HBA1C"],
		[2, 0, 7.2, "HBA1C"],
		[1, 0, 130, "LDL"]
	]
}`

func decodePatient(t *testing.T) (payload.PatientBundle, payload.Labtest) {
	t.Helper()
	p, err := payload.DecodePatient([]byte(patientJSON))
	require.NoError(t, err)
	lab, err := payload.DecodeLabtest([]byte(labtestJSON))
	require.NoError(t, err)
	return p, lab
}

// TestBuildPatient falls back to the available concepts.
func TestBuildPatient(t *testing.T) {
	p, lab := decodePatient(t)
	panel := view.BuildPatient(context.Background(), &p, &lab, "", "", indicator.DefaultLabels())

	assert.Equal(t, "Male", panel.Summary.Gender)
	assert.Equal(t, "Black", panel.Summary.Race)
	assert.Equal(t, "50.2", panel.Summary.Age)

	assert.Equal(t, []view.ConceptOption{
		{Value: "HBA1C", Label: "Hemoglobin A1C (%)"},
		{Value: "LDL", Label: "Low-Density Lipoprotein (mg/dL)"},
	}, panel.Concepts)
	assert.Equal(t, "HBA1C", panel.Left.Concept)
	assert.Equal(t, "LDL", panel.Right.Concept)

	assert.Equal(t, []string{view.LeftColumn, view.RightColumn}, panel.Chart.Names)
	assert.Equal(t, []float64{50, 51, 52}, panel.Chart.Keys())
	right, _ := panel.Chart.Column(view.RightColumn)
	assert.Equal(t, []model.NullFloat{{}, model.Float(130), {}}, right)
	assert.True(t, panel.HasSeries)
}

// TestBuildPatient_KeepsChosenMetrics uses the requested concepts when present.
func TestBuildPatient_KeepsChosenMetrics(t *testing.T) {
	p, lab := decodePatient(t)
	panel := view.BuildPatient(context.Background(), &p, &lab, "LDL", "HBA1C", indicator.DefaultLabels())
	assert.Equal(t, "LDL", panel.Left.Concept)
	assert.Equal(t, "HBA1C", panel.Right.Concept)

	single := payload.Labtest{Concepts: []string{"LDL"}}
	panel = view.BuildPatient(context.Background(), nil, &single, "", "", indicator.DefaultLabels())
	assert.Equal(t, "LDL", panel.Left.Concept)
	assert.Equal(t, "LDL", panel.Right.Concept)
	assert.False(t, panel.HasSeries)
	assert.Equal(t, "N/A", panel.Summary.Gender)
}

// TestBuildIndicators aggregates records and lines up the dominant classes.
func TestBuildIndicators(t *testing.T) {
	p, _ := decodePatient(t)
	bundle := decodeAnalysis(t)
	bundle.Probabilities = model.ProbabilityInput{
		Keys:    []float64{50, 51, 52},
		FastCKD: []float64{0.6, 0.1, 0.2},
		CKD:     []float64{0.2, 0.8, 0.2},
		Healthy: []float64{0.2, 0.1, 0.6},
	}

	panel := view.BuildIndicators(context.Background(), &p, &bundle, nil)
	assert.Equal(t, []int{50, 51, 52}, panel.Matrix.Ages)
	assert.Equal(t, []string{"EGFR", "HBA1C"}, panel.Matrix.Concepts)
	assert.Equal(t, []string{"eGFR", "Hemoglobin A1C"}, panel.Labels)
	assert.Equal(t, []model.TrajectoryClass{model.FastCKDClass, model.CKDClass, model.HealthyClass}, panel.Columns)

	require.Len(t, panel.Matrix.Cells, 3)
	first := panel.Matrix.Cells[0]
	assert.Equal(t, 0, first.AgeIndex)
	assert.Equal(t, model.UnderClass, first.Class)
	assert.Equal(t, 2, first.Counts.Under)

	noAnalysis := view.BuildIndicators(context.Background(), &p, nil, nil)
	assert.Equal(t, []model.TrajectoryClass{"", "", ""}, noAnalysis.Columns)

	empty := view.BuildIndicators(context.Background(), &payload.PatientBundle{}, nil, nil)
	assert.Empty(t, empty.Matrix.Ages)
	assert.NotNil(t, empty.Columns)
}

const populationJSON = `{
	"embed": [[0, 0, 40, 60], [4, 2, 60, 90], [2, 1, 50, 200], [1, 1, "x", 80]],
	"traj": [["blue", [[0, 0], [4, 2]]], ["green", [[1, 1]]]]
}`

// TestBuildTrajectory projects population, patient and lines in one space.
func TestBuildTrajectory(t *testing.T) {
	pop, err := payload.DecodePopulationEmbedding([]byte(populationJSON))
	require.NoError(t, err)
	patient := []model.Point{{X: 4, Y: 0}}

	panel, ok := view.BuildTrajectory(context.Background(), &pop, patient, "AGE", nil)
	require.True(t, ok)

	assert.InDelta(t, 2.0, panel.Space.Aspect, 1e-9)
	assert.Equal(t, 640.0, panel.Plot.Width)
	assert.Equal(t, 320.0, panel.Plot.Height)

	// the sample without an age is not colored
	assert.Len(t, panel.Points, 3)
	assert.Equal(t, model.Point{X: 24, Y: 24}, panel.Points[0].Pixel, "the lowest y is drawn at the top")
	require.Len(t, panel.Patient, 1)
	assert.Equal(t, model.Point{X: 616, Y: 24}, panel.Patient[0])
	require.Len(t, panel.Lines, 1)
	assert.Equal(t, "blue", panel.Lines[0].Name)

	bar := panel.ColorBar
	assert.Equal(t, "age", bar.Attribute)
	assert.Equal(t, "year", bar.Unit)
	assert.Len(t, bar.Gradient, 256)
	assert.Equal(t, []float64{bar.Domain.Max, bar.Domain.Mid(), bar.Domain.Min}, bar.Ticks)
}

// TestBuildTrajectory_Empty renders nothing without finite points.
func TestBuildTrajectory_Empty(t *testing.T) {
	panel, ok := view.BuildTrajectory(context.Background(), &payload.PopulationEmbedding{}, nil, "egfr", nil)
	assert.False(t, ok)
	assert.Empty(t, panel.Points)
	assert.Equal(t, model.Domain{Min: 45, Max: 105}, panel.ColorBar.Domain)
}
