package model

type IndicatorClass string

const (
	NormalClass IndicatorClass = "normal"
	AboveClass  IndicatorClass = "above"
	UnderClass  IndicatorClass = "under"
)

// MinAge and MaxAge bound the integer ages of observations and age axes.
const (
	MinAge = 0
	MaxAge = 150
)

// Observation is one clinical measurement after field extraction.
type Observation struct {
	Age     int
	Concept string
	Value   float64
}

type ClassCounts struct {
	Normal int `json:"normal"`
	Above  int `json:"above"`
	Under  int `json:"under"`
}

func (c *ClassCounts) Add(class IndicatorClass) {
	switch class {
	case AboveClass:
		c.Above++
	case UnderClass:
		c.Under++
	default:
		c.Normal++
	}
}

func (c *ClassCounts) Total() int {
	return c.Normal + c.Above + c.Under
}

type IndicatorCell struct {
	AgeIndex     int            `json:"age_index"`
	ConceptIndex int            `json:"concept_index"`
	Class        IndicatorClass `json:"class"`
	Counts       ClassCounts    `json:"counts"`
}

type IndicatorMatrix struct {
	Ages     []int           `json:"ages"`
	Concepts []string        `json:"concepts"`
	Cells    []IndicatorCell `json:"cells"`
}

func (m *IndicatorMatrix) IsEmpty() bool {
	return m == nil || len(m.Ages) == 0
}
