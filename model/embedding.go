package model

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EmbeddingSpace is the transform fitted on the reference cloud. It is
// computed once and reused unchanged for every point set of the same view.
type EmbeddingSpace struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	ScaleX  float64 `json:"scale_x"`
	ScaleY  float64 `json:"scale_y"`
	Aspect  float64 `json:"aspect"`
}

type Polyline struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// EmbeddingSample is one row of the population embedding, [x, y, age, egfr].
type EmbeddingSample struct {
	Point Point
	Age   float64
	EGFR  float64
}

type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (d Domain) Mid() float64 {
	return (d.Min + d.Max) / 2
}

func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}
