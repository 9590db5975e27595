package view

import (
	"context"
	"strings"

	"github.com/uyouii/trajvis/config"
	"github.com/uyouii/trajvis/embedding"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/utils"
	"go.uber.org/zap"
)

type ColoredPoint struct {
	Pixel model.Point `json:"pixel"`
	Color string      `json:"color"`
}

type ColorBar struct {
	Attribute string       `json:"attribute"`
	Unit      string       `json:"unit"`
	Domain    model.Domain `json:"domain"`
	Gradient  []string     `json:"gradient"`
	// Ticks are the top, middle and bottom labels.
	Ticks     []float64    `json:"ticks"`
}

type TrajectoryPanel struct {
	Space    model.EmbeddingSpace `json:"space"`
	Plot     embedding.Plot       `json:"plot"`
	Points   []ColoredPoint       `json:"points"`
	Patient  []model.Point        `json:"patient"`
	Lines    []model.Polyline     `json:"lines"`
	ColorBar ColorBar             `json:"color_bar"`
}

// BuildTrajectory projects the population cloud, its mean trajectories and
// the patient's own points with the transform fitted on the population.
// Points are colored by colorKey, "age" or "egfr". ok is false when the
// population has no finite point, the panel then holds the color bar only.
func BuildTrajectory(ctx context.Context, population *payload.PopulationEmbedding, patient []model.Point,
	colorKey string, cfg *config.Config) (panel TrajectoryPanel, ok bool) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("BuildTrajectory recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
			panel, ok = emptyTrajectory(embedding.DefaultWidth, embedding.DefaultMargin), false
		}
	}()

	if cfg == nil {
		cfg = config.Default()
	}
	if population == nil {
		population = &payload.PopulationEmbedding{}
	}
	colorKey = strings.ToLower(strings.TrimSpace(colorKey))

	panel = emptyTrajectory(cfg.Embedding.Width, cfg.Embedding.Margin)
	panel.ColorBar = colorBar(population.Samples, colorKey, cfg)

	space, ok := embedding.Fit(population.Points())
	if !ok {
		logger.Warn("no finite embedding point", zap.Int("samples", len(population.Samples)))
		return panel, false
	}

	plot := embedding.NewPlot(space, cfg.Embedding.Width, cfg.Embedding.Margin)
	colorizer := embedding.Colorizer{
		Domain: panel.ColorBar.Domain,
		Ramp:   embedding.RampFor(cfg.Embedding.Ramps, colorKey),
		Gamma:  cfg.Embedding.PointGamma,
	}

	panel.Space = space
	panel.Plot = plot
	for _, p := range plot.Project(space, population.Points()) {
		color, drawn := colorizer.Color(attribute(population.Samples[p.Index], colorKey))
		if !drawn {
			continue
		}
		panel.Points = append(panel.Points, ColoredPoint{Pixel: p.Pixel, Color: color})
	}
	for _, p := range plot.Project(space, patient) {
		panel.Patient = append(panel.Patient, p.Pixel)
	}
	panel.Lines = plot.ProjectLines(space, population.Lines)

	logger.Debug("trajectory panel built", zap.String("colorKey", colorKey),
		zap.Int("points", len(panel.Points)), zap.Int("patient", len(panel.Patient)),
		zap.Int("lines", len(panel.Lines)))
	return panel, true
}

func emptyTrajectory(width, margin float64) TrajectoryPanel {
	return TrajectoryPanel{
		Plot:    embedding.Plot{Width: width, Height: width, Margin: margin},
		Points:  []ColoredPoint{},
		Patient: []model.Point{},
		Lines:   []model.Polyline{},
	}
}

// attribute picks the coloring value of a sample, anything but age colors
// by eGFR.
func attribute(s model.EmbeddingSample, colorKey string) float64 {
	if colorKey == embedding.AgeAttribute {
		return s.Age
	}
	return s.EGFR
}

func colorBar(samples []model.EmbeddingSample, colorKey string, cfg *config.Config) ColorBar {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = attribute(s, colorKey)
	}

	fallback, ok := cfg.Embedding.Domains[colorKey]
	if !ok {
		fallback = cfg.Embedding.Domains[embedding.EGFRAttribute]
	}
	domain := embedding.ColorDomain(values, fallback)
	ramp := embedding.RampFor(cfg.Embedding.Ramps, colorKey)

	return ColorBar{
		Attribute: colorKey,
		Unit:      cfg.Embedding.Units[colorKey],
		Domain:    domain,
		Gradient:  ramp.Gradient(embedding.GradientStops),
		Ticks:     []float64{domain.Max, domain.Mid(), domain.Min},
	}
}
