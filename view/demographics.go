package view

import (
	"math"

	"github.com/uyouii/trajvis/payload"
)

// Categories names the two shares of a demographic distribution. Keys label
// the stacked bars, Names the ring slices.
type Categories struct {
	Keys  [2]string
	Names [2]string
}

var (
	GenderCategories = Categories{Keys: [2]string{"F", "M"}, Names: [2]string{"Female", "Male"}}
	RaceCategories   = Categories{Keys: [2]string{"B", "W"}, Names: [2]string{"Black", "White"}}
)

var groupLabels = map[string]string{
	payload.OrangeGroup: "Fast CKD",
	payload.BlueGroup:   "CKD",
	payload.GreenGroup:  "Health",
}

type Segment struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type StackBar struct {
	Group    string     `json:"group"`
	Segments [2]Segment `json:"segments"`
}

// Rings are the concentric pies of one distribution: fast progression CKD
// inside, CKD in the middle, healthy outside.
type Rings struct {
	Inner  [2]Segment `json:"inner"`
	Middle [2]Segment `json:"middle"`
	Outer  [2]Segment `json:"outer"`
}

// StackBars turns shares into whole percentages, one bar per group.
func StackBars(dist []payload.Composition, cats Categories) []StackBar {
	res := make([]StackBar, 0, len(dist))
	for _, c := range dist {
		label, ok := groupLabels[c.Group]
		if !ok {
			label = c.Group
		}
		res = append(res, StackBar{
			Group: label,
			Segments: [2]Segment{
				{Name: cats.Keys[0], Value: percent(c.Shares[0])},
				{Name: cats.Keys[1], Value: percent(c.Shares[1])},
			},
		})
	}
	return res
}

func BuildRings(dist []payload.Composition, cats Categories) Rings {
	byGroup := make(map[string][2]float64, len(dist))
	for _, c := range dist {
		byGroup[c.Group] = c.Shares
	}
	ring := func(group string) [2]Segment {
		shares := byGroup[group]
		return [2]Segment{
			{Name: cats.Names[0], Value: shares[0]},
			{Name: cats.Names[1], Value: shares[1]},
		}
	}
	return Rings{
		Inner:  ring(payload.OrangeGroup),
		Middle: ring(payload.BlueGroup),
		Outer:  ring(payload.GreenGroup),
	}
}

func percent(share float64) float64 {
	return math.Floor(share*100 + 0.5)
}
