package sim

import (
	"strconv"

	"cellmachine/internal/core"
)

// Parameters reports the run configuration grouped for display.
func (o Options) Parameters() core.ParameterSnapshot {
	spec := o.SeedSpec()
	seedParams := []core.Parameter{
		{Key: "seed", Label: "Seed", Type: core.ParamTypeString, Value: spec.Describe()},
	}
	if spec.UsesRandomness() {
		seedParams = append(seedParams, core.Parameter{
			Key: "rng_seed", Label: "RNG seed", Type: core.ParamTypeInt, Value: strconv.FormatUint(o.RNGSeed, 10),
		})
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: o.label()},
				{Key: "wrap", Label: "Wrap", Type: core.ParamTypeBool, Value: strconv.FormatBool(o.Wrap)},
				{Key: "steps", Label: "Steps", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Steps)},
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "width", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Dimensions.Width)},
				{Key: "height", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Dimensions.Height)},
				{Key: "scale", Label: "Scale", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Dimensions.Scale)},
				{Key: "delay", Label: "Delay (cs)", Type: core.ParamTypeInt, Value: strconv.Itoa(o.Delay)},
			},
		},
		{Name: "Seed", Params: seedParams},
	}}
}
