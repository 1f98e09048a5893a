// Package assessment strings the individual models together the way a user of the
// calculators would: degradation models first, then the pressure models for the selected
// well and formation, then the failure check on the accumulated wall loss.
package assessment

import (
	"context"
	"fmt"

	"CasingSafe/internal/calc/corrosion"
	"CasingSafe/internal/calc/erosion"
	"CasingSafe/internal/calc/failure"
	"CasingSafe/internal/calc/pressure"
	"CasingSafe/internal/calc/sweep"
	"CasingSafe/internal/calc/wear"
)

type Casing struct {
	OuterDiameterMM float64       `json:"outer_diameter_mm"`
	InnerDiameterMM float64       `json:"inner_diameter_mm"`
	Grade           failure.Grade `json:"grade"`
}

type Input struct {
	WellType  WellType  `json:"well_type"`
	Formation Formation `json:"formation"`

	GasErosion  erosion.GasInput         `json:"gas_erosion"`
	OilErosion  erosion.OilInput         `json:"oil_erosion"`
	Wear        wear.Input               `json:"wear"`
	Corrosion   corrosion.Input          `json:"corrosion"`
	NonPlastic  pressure.NonPlasticInput `json:"external_nonplastic"`
	Plastic     pressure.PlasticInput    `json:"external_plastic"`
	GasInternal pressure.GasInput        `json:"internal_gas"`
	OilInternal pressure.OilInput        `json:"internal_oil"`
	Casing      Casing                   `json:"casing"`
}

// Bundle is everything a report needs from one assessment.
type Bundle struct {
	WellType            WellType           `json:"well_type"`
	Formation           Formation          `json:"formation"`
	ErosionRateMMYear   float64            `json:"erosion_rate_mm_year"`
	WearAreaM2          float64            `json:"wear_area_m2"`
	CorrosionRateMMYear float64            `json:"corrosion_rate_mm_year"`
	CorrosionRegime     corrosion.Regime   `json:"corrosion_regime"`
	WallLoss            failure.WallLoss   `json:"wall_loss"`
	Pressures           failure.Pressures  `json:"pressures"`
	Assessment          failure.Assessment `json:"assessment"`
	Curves              []sweep.Curve      `json:"curves,omitempty"`
}

// Run evaluates every model the selections call for. A failure-check error is returned
// together with the bundle filled up to that point.
func Run(ctx context.Context, in Input) (Bundle, error) {
	b := Bundle{WellType: in.WellType, Formation: in.Formation}

	if err := b.erosion(ctx, in); err != nil {
		return b, err
	}

	wr := wear.Calculate(in.Wear)
	b.WearAreaM2 = wr.AreaM2
	b.WallLoss.WearMM = wr.WallLossMM
	if err := b.curve("Wear model", "Rate of penetration (m/h)", "Wear area (m2)", func() ([]sweep.Point, error) {
		return wear.SweepROP(ctx, in.Wear, wear.ROPRange.Samples())
	}); err != nil {
		return b, err
	}

	cr, err := corrosion.Calculate(in.Corrosion)
	if err != nil {
		return b, fmt.Errorf("corrosion: %w", err)
	}
	b.CorrosionRateMMYear = cr.RateMMYear
	b.CorrosionRegime = cr.Regime
	b.WallLoss.CorrosionMM = cr.WallLossMM
	if err := b.curve(corrosion.ChartTitle(in.Corrosion), "Temperature (C)", "Corrosion rate (mm/year)", func() ([]sweep.Point, error) {
		return corrosion.SweepTemperature(ctx, in.Corrosion, corrosion.TemperatureRange.Samples())
	}); err != nil {
		return b, err
	}

	if err := b.external(ctx, in); err != nil {
		return b, err
	}
	if err := b.internal(ctx, in); err != nil {
		return b, err
	}

	assessment, err := failure.Assess(failure.Input{
		OuterDiameterMM: in.Casing.OuterDiameterMM,
		InnerDiameterMM: in.Casing.InnerDiameterMM,
		WallLoss:        b.WallLoss,
		Grade:           in.Casing.Grade,
	}, b.Pressures)
	b.Assessment = assessment
	if err != nil {
		return b, fmt.Errorf("failure condition: %w", err)
	}
	return b, nil
}

func (b *Bundle) erosion(ctx context.Context, in Input) error {
	switch in.WellType {
	case GasWell:
		res, err := erosion.Gas(in.GasErosion)
		if err != nil {
			return fmt.Errorf("gas erosion: %w", err)
		}
		b.ErosionRateMMYear = res.RateMMYear
		b.WallLoss.ErosionMM = res.WallLossMM
		return b.curve("Tulsa angle dependent model", "Pipe section area (m2)", "Erosion rate (mm/year)", func() ([]sweep.Point, error) {
			return erosion.SweepGasArea(ctx, in.GasErosion, erosion.GasAreaRange.Samples())
		})
	case OilWell:
		res := erosion.Oil(in.OilErosion)
		b.ErosionRateMMYear = res.RateMMYear
		b.WallLoss.ErosionMM = res.WallLossMM
		return b.curve("Bend erosion model", "Pipe section area (m2)", "Erosion rate (mm/year)", func() ([]sweep.Point, error) {
			return erosion.SweepOilArea(ctx, in.OilErosion, erosion.OilAreaRange.Samples())
		})
	}
	return fmt.Errorf("%w: %q", ErrUnknownWellType, string(in.WellType))
}

func (b *Bundle) external(ctx context.Context, in Input) error {
	depths := pressure.DepthRange.Samples()
	switch in.Formation {
	case NonPlastic:
		res, err := pressure.ExternalNonPlastic(in.NonPlastic)
		if err != nil {
			return fmt.Errorf("external pressure: %w", err)
		}
		b.Pressures.ExternalMPa = res.MaxMPa
		return b.curve("Max external pressure, non-creeping formation", "Depth (m)", "External pressure (MPa)", func() ([]sweep.Point, error) {
			return pressure.SweepNonPlasticDepth(ctx, in.NonPlastic, depths)
		})
	case Plastic:
		res, err := pressure.ExternalPlastic(in.Plastic)
		if err != nil {
			return fmt.Errorf("external pressure: %w", err)
		}
		b.Pressures.ExternalMPa = res.MaxMPa
		return b.curve("Max external pressure, creeping formation", "Depth (m)", "External pressure (MPa)", func() ([]sweep.Point, error) {
			return pressure.SweepPlasticDepth(ctx, in.Plastic, depths)
		})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormation, string(in.Formation))
}

func (b *Bundle) internal(ctx context.Context, in Input) error {
	switch in.WellType {
	case GasWell:
		res, err := pressure.InternalGas(in.GasInternal)
		if err != nil {
			return fmt.Errorf("internal pressure: %w", err)
		}
		b.Pressures.InternalMPa = res.MaxMPa
		return b.curve("Max internal pressure, gas well", "Depth (m)", "Internal pressure (MPa)", func() ([]sweep.Point, error) {
			return pressure.SweepGasDepth(ctx, in.GasInternal, pressure.DepthRange.Samples())
		})
	case OilWell:
		res, err := pressure.InternalOil(in.OilInternal)
		if err != nil {
			return fmt.Errorf("internal pressure: %w", err)
		}
		b.Pressures.InternalMPa = res.MaxMPa
		return b.curve("Max internal pressure, oil well", "Depth (m)", "Internal pressure (MPa)", func() ([]sweep.Point, error) {
			return pressure.SweepOilDepth(ctx, in.OilInternal, pressure.OilDepthRange.Samples())
		})
	}
	return fmt.Errorf("%w: %q", ErrUnknownWellType, string(in.WellType))
}

func (b *Bundle) curve(title, xLabel, yLabel string, fn func() ([]sweep.Point, error)) error {
	points, err := fn()
	if err != nil {
		return fmt.Errorf("%s sweep: %w", title, err)
	}
	b.Curves = append(b.Curves, sweep.Curve{Title: title, XLabel: xLabel, YLabel: yLabel, Points: points})
	return nil
}
