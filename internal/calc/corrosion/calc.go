package corrosion

import (
	"context"
	"math"

	"CasingSafe/internal/calc/sweep"
)

type Regime string

const (
	RegimeCO2    Regime = "co2"
	RegimeCO2H2S Regime = "co2_h2s"
)

const (
	kelvin     = 273.15
	barPerMPa  = 10.0
	clRef      = 10000.0 // mg/L
	clWeight   = 0.1
	filmWeight = 0.4
	filmRatio  = 500.0
	sulfideK   = 0.03 // mm/year per sqrt(bar)
)

type Input struct {
	TemperatureC float64  `json:"temperature_c"`
	CO2MPa       float64  `json:"p_co2_mpa"`
	H2SMPa       float64  `json:"p_h2s_mpa"`
	ChlorideMgL  float64  `json:"chloride_mg_l"`
	PH           float64  `json:"ph"`
	Material     Material `json:"material"`
	Years        float64  `json:"years"`
}

type Result struct {
	Regime      Regime  `json:"regime"`
	BaseMMYear  float64 `json:"base_mm_year"`
	ScaleFactor float64 `json:"scale_factor"`
	PHFactor    float64 `json:"ph_factor"`
	RateMMYear  float64 `json:"rate_mm_year"`
	WallLossMM  float64 `json:"wall_loss_mm"`
	Notes       string  `json:"notes"`
}

// Calculate predicts the long-term corrosion rate. A zero H2S partial pressure selects the
// pure CO2 regime; any other value, however small, selects the combined CO2+H2S regime.
func Calculate(in Input) (Result, error) {
	mf, err := in.Material.Factor()
	if err != nil {
		return Result{}, err
	}

	cl := 1 + clWeight*math.Log(1+in.ChlorideMgL/clRef)
	co2 := in.CO2MPa * barPerMPa
	res := Result{
		Regime: RegimeCO2,
		Notes:  "CO2 corrosion (de Waard-Milliams).",
	}

	// Without CO2 the de Waard-Milliams term vanishes and only sulfide attack remains.
	var rate float64
	if co2 > 0 {
		tk := in.TemperatureC + kelvin
		logCO2 := math.Log10(co2)

		// de Waard-Milliams
		res.BaseMMYear = math.Pow(10, 5.8-1710/tk+0.67*logCO2)
		res.ScaleFactor = math.Min(1, math.Pow(10, 2400/tk-0.6*logCO2-6.7))
		res.PHFactor = phFactor(in.PH, 3.71+0.00417*in.TemperatureC-0.5*logCO2)
		rate = res.BaseMMYear * res.ScaleFactor * res.PHFactor * cl * mf
	}
	if in.H2SMPa != 0 {
		h2s := in.H2SMPa * barPerMPa
		if co2 > 0 {
			rate *= 1 / (1 + filmWeight*math.Log10(1+filmRatio*h2s/co2))
		}
		rate += sulfideK * math.Sqrt(h2s) * cl * mf
		res.Regime = RegimeCO2H2S
		res.Notes = "CO2 and H2S coexisting corrosion (iron sulfide film correction)."
	}
	res.RateMMYear = rate
	res.WallLossMM = rate * in.Years
	return res, nil
}

func phFactor(ph, saturated float64) float64 {
	if ph < saturated {
		return math.Pow(10, 0.32*(saturated-ph))
	}
	return math.Pow(10, -0.13*math.Pow(ph-saturated, 1.6))
}

// TemperatureRange is the temperature sweep used for the corrosion chart.
var TemperatureRange = sweep.Range{From: 0.001, To: 100, Points: sweep.DefaultPoints}

// SweepTemperature returns the corrosion rate (mm/year) with the temperature replaced by each x.
func SweepTemperature(ctx context.Context, in Input, xs []float64) ([]sweep.Point, error) {
	return sweep.Run(ctx, xs, func(x float64) (float64, error) {
		sample := in
		sample.TemperatureC = x
		res, err := Calculate(sample)
		return res.RateMMYear, err
	})
}

// ChartTitle names the curve after the regime the input selects.
func ChartTitle(in Input) string {
	if in.H2SMPa != 0 {
		return "CO2 and H2S coexisting corrosion"
	}
	return "CO2 corrosion"
}
