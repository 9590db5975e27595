package model

type TrajectoryClass string

const (
	FastCKDClass TrajectoryClass = "fast"
	CKDClass     TrajectoryClass = "ckd"
	HealthyClass TrajectoryClass = "healthy"
)

// ProbabilityInput holds the parallel arrays of the analysis payload,
// lengths may differ.
type ProbabilityInput struct {
	Keys    []float64
	FastCKD []float64 // orange_poss
	CKD     []float64 // blue_poss
	Healthy []float64 // green_poss
}

func (in *ProbabilityInput) Len() int {
	if in == nil {
		return 0
	}
	return min(len(in.Keys), len(in.FastCKD), len(in.CKD), len(in.Healthy))
}

type ProbabilityRow struct {
	Age     int     `json:"age"`
	FastCKD float64 `json:"fast_ckd"`
	CKD     float64 `json:"ckd"`
	Healthy float64 `json:"healthy"`
}

func (r *ProbabilityRow) Sum() float64 {
	return r.FastCKD + r.CKD + r.Healthy
}

type AgeClass struct {
	Age   int             `json:"age"`
	Class TrajectoryClass `json:"class"`
}
