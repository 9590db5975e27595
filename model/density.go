package model

type DensityKind string

const (
	HistDensity   DensityKind = "hist"
	SeriesDensity DensityKind = "series"
	NoneDensity   DensityKind = "none"
)

type DensityPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DensitySeries is a population distribution, empty Rows means the caller
// should use a fallback.
type DensitySeries struct {
	Kind DensityKind    `json:"kind"`
	Rows []DensityPoint `json:"rows"`
}

func EmptyDensity() DensitySeries {
	return DensitySeries{Kind: NoneDensity, Rows: []DensityPoint{}}
}

func (d *DensitySeries) IsEmpty() bool {
	return d == nil || len(d.Rows) == 0
}
