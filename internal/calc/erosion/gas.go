package erosion

import (
	"context"
	"math"

	"CasingSafe/internal/calc/sweep"
)

const (
	secondsPerYear = 365 * 24 * 3600.0

	// Ahlert carbon steel constants for the Tulsa angle dependent model.
	ahlertA       = 1559e-9
	hardnessExp   = -0.59
	velocityExp   = 1.73
	defaultBrinel = 220.0
	transitionDeg = 15.0
	angleA        = -38.4
	angleB        = 22.7
	angleW        = 1.0
	angleX        = 3.147
	angleY        = 36.9
	angleZ        = 0.3609
)

type GasInput struct {
	SandRateKgS        float64  `json:"sand_rate_kg_s"`
	Geometry           Geometry `json:"geometry"`
	ImpactAngleDeg     float64  `json:"impact_angle_deg"`
	WallDensityKgM3    float64  `json:"wall_density_kg_m3"`
	PipeAreaM2         float64  `json:"pipe_area_m2"`
	BrinellHardness    float64  `json:"brinell_hardness"`
	ExposureYears      float64  `json:"exposure_years"`
	ParticleVelocityMS float64  `json:"particle_velocity_m_s"`
}

type GasResult struct {
	SharpnessFactor float64 `json:"sharpness_factor"`
	ErosionRatio    float64 `json:"erosion_ratio"` // kg of wall per kg of sand
	RateMS          float64 `json:"rate_m_s"`
	RateMMYear      float64 `json:"rate_mm_year"`
	WallLossMM      float64 `json:"wall_loss_mm"`
	Notes           string  `json:"notes"`
}

// Gas evaluates the Tulsa angle dependent erosion model for gas wells.
func Gas(in GasInput) (GasResult, error) {
	fs, err := in.Geometry.Sharpness()
	if err != nil {
		return GasResult{}, err
	}
	if in.BrinellHardness <= 0 {
		in.BrinellHardness = defaultBrinel
	}

	er := ahlertA * math.Pow(in.BrinellHardness, hardnessExp) * fs *
		math.Pow(in.ParticleVelocityMS, velocityExp) * angleFunction(in.ImpactAngleDeg)

	// Penetration: eroded mass over wall density spread across the exposed section.
	rate := er * in.SandRateKgS / (in.WallDensityKgM3 * in.PipeAreaM2)
	rateMM := rate * 1000 * secondsPerYear

	return GasResult{
		SharpnessFactor: fs,
		ErosionRatio:    er,
		RateMS:          rate,
		RateMMYear:      rateMM,
		WallLossMM:      rateMM * in.ExposureYears,
		Notes:           "Tulsa angle dependent model (Ahlert carbon steel constants).",
	}, nil
}

func angleFunction(deg float64) float64 {
	a := deg * math.Pi / 180
	if deg <= transitionDeg {
		return angleA*a*a + angleB*a
	}
	cos := math.Cos(a)
	sin := math.Sin(a)
	return angleX*cos*cos*math.Sin(angleW*a) + angleY*sin*sin + angleZ
}

// GasAreaRange is the pipe cross-section sweep used for the gas well chart.
var GasAreaRange = sweep.Range{From: 0.01, To: 0.25, Points: sweep.DefaultPoints}

// SweepGasArea evaluates the erosion rate (mm/year) with the pipe area replaced by each x.
func SweepGasArea(ctx context.Context, in GasInput, xs []float64) ([]sweep.Point, error) {
	return sweep.Run(ctx, xs, func(x float64) (float64, error) {
		sample := in
		sample.PipeAreaM2 = x
		res, err := Gas(sample)
		return res.RateMMYear, err
	})
}
