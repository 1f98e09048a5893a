package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrPressuresRequired means the maximum external and internal pressures have not been
	// computed, or came out non-positive.
	ErrPressuresRequired = errors.New("must compute pressures first")
	// ErrNonPositiveMargin means a residual strength is not positive, so no margin exists.
	ErrNonPositiveMargin = errors.New("residual strength must be greater than zero")
)

// API burst rating allows 12.5% wall tolerance.
const wallTolerance = 0.875

const (
	collapseSafe = 1.125
	burstSafe    = 1.25
)

type SafetyLevel string

const (
	Safe      SafetyLevel = "safe"
	Warning   SafetyLevel = "warning"
	Dangerous SafetyLevel = "dangerous"
)

// WallLoss is the cumulative thinning carried over from the degradation models, mm.
type WallLoss struct {
	ErosionMM   float64 `json:"erosion_mm"`
	WearMM      float64 `json:"wear_mm"`
	CorrosionMM float64 `json:"corrosion_mm"`
}

func (l WallLoss) Total() float64 {
	return l.ErosionMM + l.WearMM + l.CorrosionMM
}

// Validate reports a negative component. Calculate itself does not call it.
func (l WallLoss) Validate() error {
	if l.ErosionMM < 0 || l.WearMM < 0 || l.CorrosionMM < 0 {
		return fmt.Errorf("wall loss must not be negative: %+v", l)
	}
	return nil
}

type Input struct {
	OuterDiameterMM float64  `json:"outer_diameter_mm"`
	InnerDiameterMM float64  `json:"inner_diameter_mm"`
	WallLoss        WallLoss `json:"wall_loss"`
	Grade           Grade    `json:"grade"`
}

type Strength struct {
	YieldMPa       float64        `json:"yield_mpa"`
	NominalWallMM  float64        `json:"nominal_wall_mm"`
	ResidualWallMM float64        `json:"residual_wall_mm"`
	BurstMPa       float64        `json:"residual_burst_mpa"`
	CollapseMPa    float64        `json:"residual_collapse_mpa"`
	CollapseRegime CollapseRegime `json:"collapse_regime"`
}

// Calculate returns the residual burst and collapse strength of the thinned pipe.
func Calculate(in Input) Strength {
	yp := in.Grade.YieldMPa()
	nominal := (in.OuterDiameterMM - in.InnerDiameterMM) / 2
	t := nominal - in.WallLoss.Total()
	collapse, regime := CollapseMPa(yp, in.OuterDiameterMM, t)
	return Strength{
		YieldMPa:       yp,
		NominalWallMM:  nominal,
		ResidualWallMM: t,
		BurstMPa:       wallTolerance * 2 * yp * t / in.OuterDiameterMM,
		CollapseMPa:    collapse,
		CollapseRegime: regime,
	}
}

// Pressures are the governing loads from the external and internal pressure models.
type Pressures struct {
	ExternalMPa float64 `json:"max_external_mpa"`
	InternalMPa float64 `json:"max_internal_mpa"`
}

func (p Pressures) ready() bool {
	return p.ExternalMPa > 0 && p.InternalMPa > 0
}

type Assessment struct {
	Strength
	CollapseMargin float64     `json:"collapse_margin"`
	BurstMargin    float64     `json:"burst_margin"`
	Level          SafetyLevel `json:"safety_level"`
}

// Assess computes residual strength and classifies it against the pressures. When it fails
// the returned Assessment still carries the strength figures.
func Assess(in Input, p Pressures) (Assessment, error) {
	out := Assessment{Strength: Calculate(in)}
	if !p.ready() {
		return out, ErrPressuresRequired
	}
	out.CollapseMargin = out.CollapseMPa / p.ExternalMPa
	out.BurstMargin = out.BurstMPa / p.InternalMPa
	level, err := Classify(out.CollapseMargin, out.BurstMargin)
	if err != nil {
		return out, err
	}
	out.Level = level
	return out, nil
}

// Classify maps the collapse margin sw and burst margin sn to a safety level.
// Margins that sit exactly on a threshold are not safe.
func Classify(sw, sn float64) (SafetyLevel, error) {
	if !(sw > 0) || !(sn > 0) {
		return "", fmt.Errorf("%w: collapse %.4g, burst %.4g", ErrNonPositiveMargin, sw, sn)
	}
	switch {
	case sw > collapseSafe && sn > burstSafe:
		return Safe, nil
	case (sw > 1 && sw <= collapseSafe) || (sn > 1 && sn <= burstSafe):
		return Warning, nil
	}
	return Dangerous, nil
}
