package embedding

import (
	"math"

	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
	"gonum.org/v1/gonum/floats"
)

// Epsilon is the smallest range of a fitted axis.
const Epsilon = 1e-12

// Fit computes the transform mapping the bounding box of points onto
// [-1, 1] x [-1, 1]. Non-finite points are ignored, ok is false when no
// finite point is left.
// The same space is used for every point set of one view.
func Fit(points []model.Point) (model.EmbeddingSpace, bool) {
	xs, ys := make([]float64, 0, len(points)), make([]float64, 0, len(points))
	for _, p := range points {
		if !finitePoint(p) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 0 {
		return model.EmbeddingSpace{}, false
	}

	// halved bounds keep the center and half range finite for any finite input
	minX, maxX := floats.Min(xs)/2, floats.Max(xs)/2
	minY, maxY := floats.Min(ys)/2, floats.Max(ys)/2
	halfX := math.Max(Epsilon/2, maxX-minX)
	halfY := math.Max(Epsilon/2, maxY-minY)

	return model.EmbeddingSpace{
		CenterX: minX + maxX,
		CenterY: minY + maxY,
		ScaleX:  1 / halfX,
		ScaleY:  1 / halfY,
		Aspect:  halfX / halfY,
	}, true
}

// Normalize maps p into the unit square of space and mirrors it on the
// vertical axis.
func Normalize(space model.EmbeddingSpace, p model.Point) model.Point {
	x := (p.X - space.CenterX) * space.ScaleX
	y := (p.Y - space.CenterY) * space.ScaleY
	return model.Point{X: x, Y: -y}
}

func finitePoint(p model.Point) bool {
	return utils.IsFinite(p.X) && utils.IsFinite(p.Y)
}
