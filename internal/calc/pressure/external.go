package pressure

import (
	"context"

	"CasingSafe/internal/calc/sweep"
)

// G converts a density in g/cm3 over a column in m to MPa.
const G = 0.00981

// DefaultOverburden is the vertical stress gradient of creeping formations, MPa/m.
const DefaultOverburden = 0.023

type NonPlasticInput struct {
	MudDensity   float64     `json:"rho_m"`
	WaterDensity float64     `json:"rho_w"`
	Emptying     float64     `json:"k_m"`
	MinDensity   float64     `json:"rho_min"`
	Casing       CasingClass `json:"casing_class"`
	DepthM       float64     `json:"depth_m"`
}

type PlasticInput struct {
	Emptying       float64     `json:"k_m"`
	MinDensity     float64     `json:"rho_min"`
	WaterDensity   float64     `json:"rho_w"`
	DepthM         float64     `json:"depth_m"`
	Poisson        float64     `json:"poisson"`
	Casing         CasingClass `json:"casing_class"`
	OverburdenMPaM float64     `json:"overburden_mpa_m,omitempty"`
}

type ExternalResult struct {
	OuterMPa float64 `json:"outer_mpa"`
	InnerMPa float64 `json:"inner_mpa"`
	MaxMPa   float64 `json:"max_external_mpa"`
	Notes    string  `json:"notes"`
}

// innerDensity is the fluid left inside the string once it is partially emptied.
func innerDensity(c CasingClass, minDensity, water float64) float64 {
	if c == ProductionLiner {
		return water
	}
	return minDensity
}

// ExternalNonPlastic returns the collapse load in formations that do not creep.
// The mud column outside is opposed by the remaining inner column.
func ExternalNonPlastic(in NonPlasticInput) (ExternalResult, error) {
	if err := in.Casing.valid(); err != nil {
		return ExternalResult{}, err
	}
	outer := G * in.MudDensity * in.DepthM
	inner := G * (1 - in.Emptying) * innerDensity(in.Casing, in.MinDensity, in.WaterDensity) * in.DepthM
	return ExternalResult{
		OuterMPa: outer,
		InnerMPa: inner,
		MaxMPa:   outer - inner,
		Notes:    "Non-creeping formation, mud column outside.",
	}, nil
}

// ExternalPlastic returns the collapse load in salt or shale that creeps onto the casing,
// loading it with the horizontal share of the overburden.
func ExternalPlastic(in PlasticInput) (ExternalResult, error) {
	if err := in.Casing.valid(); err != nil {
		return ExternalResult{}, err
	}
	if in.OverburdenMPaM <= 0 {
		in.OverburdenMPaM = DefaultOverburden
	}
	outer := in.OverburdenMPaM * in.DepthM * in.Poisson / (1 - in.Poisson)
	inner := G * (1 - in.Emptying) * innerDensity(in.Casing, in.MinDensity, in.WaterDensity) * in.DepthM
	return ExternalResult{
		OuterMPa: outer,
		InnerMPa: inner,
		MaxMPa:   outer - inner,
		Notes:    "Creeping formation, horizontal overburden stress outside.",
	}, nil
}

// DepthRange is the depth sweep used for every pressure chart.
var DepthRange = sweep.Range{From: 1, To: 10000, Points: sweep.DefaultPoints}

func SweepNonPlasticDepth(ctx context.Context, in NonPlasticInput, xs []float64) ([]sweep.Point, error) {
	return sweep.Run(ctx, xs, func(x float64) (float64, error) {
		sample := in
		sample.DepthM = x
		res, err := ExternalNonPlastic(sample)
		return res.MaxMPa, err
	})
}

func SweepPlasticDepth(ctx context.Context, in PlasticInput, xs []float64) ([]sweep.Point, error) {
	return sweep.Run(ctx, xs, func(x float64) (float64, error) {
		sample := in
		sample.DepthM = x
		res, err := ExternalPlastic(sample)
		return res.MaxMPa, err
	})
}
