package indicator

import (
	"sort"

	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/utils"
)

type cellKey struct {
	age     int
	concept string
}

// Aggregate builds the age x concept matrix of the observations.
//
// Ages cover every integer between the youngest and the oldest observation,
// concepts are ordered by frequency then name. Only cells with at least one
// observation are emitted, ordered by age then concept. Observations aged
// outside [model.MinAge, model.MaxAge] are ignored.
func Aggregate(observations []model.Observation, ranges NormalRanges) model.IndicatorMatrix {
	valid := make([]model.Observation, 0, len(observations))
	for _, obs := range observations {
		if obs.Concept == "" || !utils.IsFinite(obs.Value) {
			continue
		}
		if obs.Age < model.MinAge || obs.Age > model.MaxAge {
			continue
		}
		valid = append(valid, obs)
	}
	if len(valid) == 0 {
		return model.IndicatorMatrix{Ages: []int{}, Concepts: []string{}, Cells: []model.IndicatorCell{}}
	}

	ages := ageAxis(valid)
	concepts := orderConcepts(valid)

	counts := make(map[cellKey]*model.ClassCounts)
	for _, obs := range valid {
		key := cellKey{age: obs.Age, concept: obs.Concept}
		c, ok := counts[key]
		if !ok {
			c = &model.ClassCounts{}
			counts[key] = c
		}
		c.Add(ranges.Classify(obs.Concept, obs.Value))
	}

	cells := make([]model.IndicatorCell, 0, len(counts))
	for ai, age := range ages {
		for ci, concept := range concepts {
			c, ok := counts[cellKey{age: age, concept: concept}]
			if !ok {
				continue
			}
			cells = append(cells, model.IndicatorCell{
				AgeIndex:     ai,
				ConceptIndex: ci,
				Class:        Resolve(*c),
				Counts:       *c,
			})
		}
	}

	return model.IndicatorMatrix{
		Ages:     ages,
		Concepts: concepts,
		Cells:    cells,
	}
}

// Resolve picks the displayed class of a cell by majority. Above wins ties
// with normal and under, under needs to strictly beat normal.
func Resolve(c model.ClassCounts) model.IndicatorClass {
	class := model.NormalClass
	if c.Above >= c.Normal && c.Above >= c.Under {
		class = model.AboveClass
	}
	if c.Under > c.Normal && c.Under >= c.Above {
		class = model.UnderClass
	}
	return class
}

func ageAxis(observations []model.Observation) []int {
	minAge, maxAge := observations[0].Age, observations[0].Age
	for _, obs := range observations[1:] {
		minAge = min(minAge, obs.Age)
		maxAge = max(maxAge, obs.Age)
	}

	res := make([]int, 0, maxAge-minAge+1)
	for age := minAge; age <= maxAge; age++ {
		res = append(res, age)
	}
	return res
}

func orderConcepts(observations []model.Observation) []string {
	freq := map[string]int{}
	for _, obs := range observations {
		freq[obs.Concept]++
	}

	res := make([]string, 0, len(freq))
	for concept := range freq {
		res = append(res, concept)
	}
	sort.Slice(res, func(i, j int) bool {
		if freq[res[i]] != freq[res[j]] {
			return freq[res[i]] > freq[res[j]]
		}
		return res[i] < res[j]
	})
	return res
}

// ColumnClasses lines the dominant trajectory class of each age up with the
// matrix columns, ages without a class get "".
func ColumnClasses(ages []int, dominant []model.AgeClass) []model.TrajectoryClass {
	byAge := make(map[int]model.TrajectoryClass, len(dominant))
	for _, d := range dominant {
		byAge[d.Age] = d.Class
	}

	res := make([]model.TrajectoryClass, len(ages))
	for i, age := range ages {
		res[i] = byAge[age]
	}
	return res
}
