package embedding

import (
	"github.com/uyouii/trajvis/model"
)

const (
	DefaultWidth  = 640.0
	DefaultMargin = 24.0
)

// Plot is the pixel rectangle the unit square is drawn into. Height follows
// the aspect of the fitted space.
type Plot struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

func NewPlot(space model.EmbeddingSpace, width, margin float64) Plot {
	aspect := space.Aspect
	if !(aspect > 0) {
		aspect = 1
	}
	return Plot{
		Width:  width,
		Height: width / aspect,
		Margin: margin,
	}
}

// ToPixel maps a normalized point to pixel space, y grows downwards.
func (p Plot) ToPixel(pt model.Point) model.Point {
	w := p.Width - 2*p.Margin
	h := p.Height - 2*p.Margin
	return model.Point{
		X: p.Margin + (pt.X+1)/2*w,
		Y: p.Margin + (1-(pt.Y+1)/2)*h,
	}
}

// Pixel normalizes and maps one raw point.
func (p Plot) Pixel(space model.EmbeddingSpace, pt model.Point) model.Point {
	return p.ToPixel(Normalize(space, pt))
}

// ProjectedPoint keeps the index of the raw point it came from.
type ProjectedPoint struct {
	Index int         `json:"index"`
	Pixel model.Point `json:"pixel"`
}

// Project maps every finite point of points with the given space.
func (p Plot) Project(space model.EmbeddingSpace, points []model.Point) []ProjectedPoint {
	res := make([]ProjectedPoint, 0, len(points))
	for i, pt := range points {
		if !finitePoint(pt) {
			continue
		}
		px := p.Pixel(space, pt)
		if !finitePoint(px) {
			continue
		}
		res = append(res, ProjectedPoint{Index: i, Pixel: px})
	}
	return res
}

// ProjectLines maps every polyline, lines with fewer than two finite pixels
// are dropped.
func (p Plot) ProjectLines(space model.EmbeddingSpace, lines []model.Polyline) []model.Polyline {
	res := make([]model.Polyline, 0, len(lines))
	for _, line := range lines {
		pixels := make([]model.Point, 0, len(line.Points))
		for _, pt := range line.Points {
			px := p.Pixel(space, pt)
			if !finitePoint(px) {
				continue
			}
			pixels = append(pixels, px)
		}
		if len(pixels) < 2 {
			continue
		}
		res = append(res, model.Polyline{Name: line.Name, Points: pixels})
	}
	return res
}
