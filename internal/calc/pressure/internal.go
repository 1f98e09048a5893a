package pressure

import (
	"context"

	"CasingSafe/internal/calc/sweep"
)

// BackupBrine is the annulus fluid assumed behind gas well casing, g/cm3.
const BackupBrine = 1.07

type GasInput struct {
	MaxDensity     float64     `json:"rho_max"`
	ReservoirDepth float64     `json:"h_s"`
	PorePressure   float64     `json:"p_p_mpa"`
	GasDensity     float64     `json:"rho_g"`
	DepthM         float64     `json:"depth_m"`
	NextDepth      float64     `json:"h_mg"`
	Casing         CasingClass `json:"casing_class"`
}

type OilInput struct {
	MaxDensity     float64     `json:"rho_max"`
	WaterDensity   float64     `json:"rho_w"`
	GradientMPaM   float64     `json:"gradient_mpa_m"`
	DepthM         float64     `json:"depth_m"`
	ReservoirDepth float64     `json:"h_s"`
	Casing         CasingClass `json:"casing_class"`
}

type InternalResult struct {
	InnerMPa  float64 `json:"inner_mpa"`
	BackupMPa float64 `json:"backup_mpa"`
	MaxMPa    float64 `json:"max_internal_mpa"`
	Notes     string  `json:"notes"`
}

// InternalGas returns the burst load for gas well casing.
//
// Surface and technical strings take a gas kick displacing the mud of the next section to
// surface; production strings take a tubing leak at surface on top of the packer fluid.
func InternalGas(in GasInput) (InternalResult, error) {
	if err := in.Casing.valid(); err != nil {
		return InternalResult{}, err
	}
	var inner float64
	var notes string
	switch in.Casing {
	case SurfaceTechnical:
		inner = G*in.MaxDensity*in.NextDepth - G*in.GasDensity*(in.NextDepth-in.DepthM)
		notes = "Gas kick to surface while drilling the next section."
	case ProductionLiner:
		inner = in.PorePressure - G*in.GasDensity*in.ReservoirDepth + G*in.MaxDensity*in.DepthM
		notes = "Tubing leak below the hanger, packer fluid column."
	}
	backup := G * BackupBrine * in.DepthM
	return InternalResult{
		InnerMPa:  inner,
		BackupMPa: backup,
		MaxMPa:    inner - backup,
		Notes:     notes,
	}, nil
}

// InternalOil returns the burst load for oil well casing, with formation pressure given
// as a gradient over the reservoir depth.
func InternalOil(in OilInput) (InternalResult, error) {
	if err := in.Casing.valid(); err != nil {
		return InternalResult{}, err
	}
	formation := in.GradientMPaM * in.ReservoirDepth
	var inner float64
	var notes string
	switch in.Casing {
	case SurfaceTechnical:
		inner = formation - G*in.MaxDensity*(in.ReservoirDepth-in.DepthM)
		notes = "Shut-in kick, mud column above the influx."
	case ProductionLiner:
		inner = formation - G*in.WaterDensity*in.ReservoirDepth + G*in.MaxDensity*in.DepthM
		notes = "Tubing leak below the hanger, packer fluid column."
	}
	backup := G * in.WaterDensity * in.DepthM
	return InternalResult{
		InnerMPa:  inner,
		BackupMPa: backup,
		MaxMPa:    inner - backup,
		Notes:     notes,
	}, nil
}

// OilDepthRange starts shallower than DepthRange to show the wellhead load.
var OilDepthRange = sweep.Range{From: 0.1, To: 10000, Points: sweep.DefaultPoints}

func SweepGasDepth(ctx context.Context, in GasInput, xs []float64) ([]sweep.Point, error) {
	return sweep.Run(ctx, xs, func(x float64) (float64, error) {
		sample := in
		sample.DepthM = x
		res, err := InternalGas(sample)
		return res.MaxMPa, err
	})
}

func SweepOilDepth(ctx context.Context, in OilInput, xs []float64) ([]sweep.Point, error) {
	return sweep.Run(ctx, xs, func(x float64) (float64, error) {
		sample := in
		sample.DepthM = x
		res, err := InternalOil(sample)
		return res.MaxMPa, err
	})
}
