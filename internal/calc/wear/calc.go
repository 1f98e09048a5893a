package wear

import (
	"context"
	"math"

	"CasingSafe/internal/calc/sweep"
)

const bisectSteps = 100

type Input struct {
	Friction             float64 `json:"friction"`
	RotarySpeedRPM       float64 `json:"rotary_speed_rpm"`
	WearFactorPerPa      float64 `json:"wear_factor_per_pa"`
	ToolJointDiameterMM  float64 `json:"tool_joint_diameter_mm"`
	DrilledLengthM       float64 `json:"drilled_length_m"`
	ROPMH                float64 `json:"rop_m_h"`
	CasingInnerRadiusMM  float64 `json:"casing_inner_radius_mm"`
	AxialLoadN           float64 `json:"axial_load_n"`
	AzimuthChangeDeg     float64 `json:"azimuth_change_deg"`
	InclinationChangeDeg float64 `json:"inclination_change_deg"`
	InclinationDeg       float64 `json:"inclination_deg"`
	PipeWeightNM         float64 `json:"pipe_weight_n_m"`
	SectionLengthM       float64 `json:"section_length_m"`
}

type Result struct {
	SideForceN float64 `json:"side_force_n"`
	LineLoadNM float64 `json:"line_load_n_m"`
	SlidingM   float64 `json:"sliding_m"`
	AreaM2     float64 `json:"area_m2"`
	WallLossMM float64 `json:"wall_loss_mm"`
	Notes      string  `json:"notes"`
}

// Calculate estimates the crescent worn into the casing bore by a rotating tool joint.
func Calculate(in Input) Result {
	phi := in.AzimuthChangeDeg * math.Pi / 180
	dAlpha := in.InclinationChangeDeg * math.Pi / 180
	sinA := math.Sin(in.InclinationDeg * math.Pi / 180)

	// Soft-string side force over the dogleg section.
	lateral := in.AxialLoadN * phi * sinA
	vertical := in.AxialLoadN*dAlpha + in.PipeWeightNM*in.SectionLengthM*sinA
	side := math.Hypot(lateral, vertical)
	q := side / in.SectionLengthM

	hours := in.DrilledLengthM / in.ROPMH
	sliding := math.Pi * in.ToolJointDiameterMM / 1000 * in.RotarySpeedRPM * 60 * hours

	area := in.Friction * in.WearFactorPerPa * q * sliding

	return Result{
		SideForceN: side,
		LineLoadNM: q,
		SlidingM:   sliding,
		AreaM2:     area,
		WallLossMM: GrooveDepth(area*1e6, in.ToolJointDiameterMM/2, in.CasingInnerRadiusMM),
		Notes:      "Linear wear-efficiency model with crescent geometry.",
	}
}

// GrooveDepth returns how far a tool joint of radius r has cut past a bore of radius
// R when the removed crescent has the given area. All lengths in mm, area in mm2.
// The depth never exceeds the tool joint diameter.
func GrooveDepth(area, r, R float64) float64 {
	lo, hi := 0.0, 2*r
	for i := 0; i < bisectSteps; i++ {
		mid := (lo + hi) / 2
		if CrescentArea(mid, r, R) < area {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// CrescentArea is the part of the tool joint circle lying outside the casing bore when
// the joint is pushed depth mm into the wall.
func CrescentArea(depth, r, R float64) float64 {
	e := R - r + depth
	switch {
	case e <= math.Abs(R-r):
		return 0
	case e >= R+r:
		return math.Pi * r * r
	}
	return math.Pi*r*r - lensArea(e, r, R)
}

func lensArea(e, r, R float64) float64 {
	c1 := clamp((e*e + r*r - R*R) / (2 * e * r))
	c2 := clamp((e*e + R*R - r*r) / (2 * e * R))
	k := (-e + r + R) * (e + r - R) * (e - r + R) * (e + r + R)
	return r*r*math.Acos(c1) + R*R*math.Acos(c2) - 0.5*math.Sqrt(k)
}

func clamp(c float64) float64 {
	return math.Max(-1, math.Min(1, c))
}

// ROPRange is the drilling rate sweep used for the wear chart.
var ROPRange = sweep.Range{From: 5, To: 50, Points: sweep.DefaultPoints}

// SweepROP returns the wear area (m2) with the rate of penetration replaced by each x.
func SweepROP(ctx context.Context, in Input, xs []float64) ([]sweep.Point, error) {
	return sweep.Map(ctx, xs, func(x float64) float64 {
		sample := in
		sample.ROPMH = x
		return Calculate(sample).AreaM2
	})
}
