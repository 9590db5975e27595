package embedding

import "github.com/uyouii/trajvis/model"

const (
	AgeAttribute  = "age"
	EGFRAttribute = "egfr"
)

type RampSpec struct {
	Stops []string `mapstructure:"stops" json:"stops"`
	Gamma float64  `mapstructure:"gamma" json:"gamma"`
}

func DefaultRampSpecs() map[string]RampSpec {
	return map[string]RampSpec{
		// yellow to deep purple, gamma > 1 widens the yellow end
		AgeAttribute: {Stops: []string{"#ffff33", "#3b0a45"}, Gamma: 1.2},
		// blue, teal, yellow
		EGFRAttribute: {Stops: []string{"#2c7bb6", "#00ccbc", "#ffff33"}, Gamma: 0.8},
	}
}

// DefaultDomains are used when an attribute has no finite value.
func DefaultDomains() map[string]model.Domain {
	return map[string]model.Domain{
		AgeAttribute:  {Min: 30, Max: 100},
		EGFRAttribute: {Min: 45, Max: 105},
	}
}

// Units of the coloring attributes, shown next to the color bar.
func DefaultUnits() map[string]string {
	return map[string]string{
		AgeAttribute:  "year",
		EGFRAttribute: "mL/min/1.73m²",
	}
}

// RampFor builds the ramp of attribute, unknown or broken specs give the
// flat gray ramp.
func RampFor(specs map[string]RampSpec, attribute string) Ramp {
	spec, ok := specs[attribute]
	if !ok {
		return FlatRamp()
	}
	ramp, err := NewRamp(spec.Stops, spec.Gamma)
	if err != nil {
		return FlatRamp()
	}
	return ramp
}
