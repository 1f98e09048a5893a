package erosion

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"CasingSafe/internal/calc/sweep"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gasFixture() GasInput {
	return GasInput{
		SandRateKgS:        0.01,
		Geometry:           GeometryAngular,
		ImpactAngleDeg:     30,
		WallDensityKgM3:    7850,
		PipeAreaM2:         0.03,
		BrinellHardness:    220,
		ExposureYears:      5,
		ParticleVelocityMS: 20,
	}
}

func oilFixture() OilInput {
	return OilInput{
		SandRateKgS:        0.01,
		ImpactVelocityMS:   10,
		TargetDensityKgM3:  7850,
		PipeAreaM2:         0.03,
		ImpactAngleDeg:     30,
		MixtureDensityKgM3: 900,
		ParticleDiameterM:  2.5e-4,
		ExposureYears:      5,
	}
}

func TestParseGeometry(t *testing.T) {
	cases := map[string]Geometry{
		"circular":  GeometryCircular,
		"圆形":        GeometryCircular,
		"半圆形":       GeometrySemicircular,
		" Angular ": GeometryAngular,
		"角形":        GeometryAngular,
	}
	for in, want := range cases {
		got, err := ParseGeometry(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseGeometry("square")
	assert.ErrorIs(t, err, ErrUnknownGeometry)
}

func TestGeometry_Sharpness(t *testing.T) {
	for g, want := range map[Geometry]float64{
		GeometryCircular:     0.2,
		GeometrySemicircular: 0.53,
		GeometryAngular:      1.0,
	} {
		fs, err := g.Sharpness()
		require.NoError(t, err)
		assert.Equal(t, want, fs)
	}

	_, err := Geometry("oval").Sharpness()
	assert.ErrorIs(t, err, ErrUnknownGeometry)
}

func TestGas(t *testing.T) {
	res, err := Gas(gasFixture())
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.SharpnessFactor)
	assert.InDelta(t, 1.2407e-4, res.ErosionRatio, 1e-7)
	assert.InDelta(t, 166.14, res.RateMMYear, 0.05)
	assert.InDelta(t, res.RateMMYear*5, res.WallLossMM, 1e-9)
	assert.NotEmpty(t, res.Notes)
}

func TestGas_SharpnessScalesRate(t *testing.T) {
	in := gasFixture()
	angular, err := Gas(in)
	require.NoError(t, err)

	in.Geometry = GeometryCircular
	circular, err := Gas(in)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, angular.RateMMYear/circular.RateMMYear, 1e-9)
}

func TestGas_DefaultHardness(t *testing.T) {
	in := gasFixture()
	explicit, err := Gas(in)
	require.NoError(t, err)

	in.BrinellHardness = 0
	defaulted, err := Gas(in)
	require.NoError(t, err)
	assert.Equal(t, explicit, defaulted)
}

func TestGas_UnknownGeometry(t *testing.T) {
	in := gasFixture()
	in.Geometry = "oval"
	_, err := Gas(in)
	assert.ErrorIs(t, err, ErrUnknownGeometry)
}

func TestAngleFunction(t *testing.T) {
	assert.InDelta(t, 2.7922, angleFunction(10), 1e-4)
	assert.InDelta(t, 3.3110, angleFunction(15), 1e-4)
	assert.InDelta(t, 37.2609, angleFunction(90), 1e-4)
}

func TestOil(t *testing.T) {
	res := Oil(oilFixture())

	assert.InDelta(t, 0.99254, res.AngleFunction, 1e-4)
	assert.Greater(t, res.SizeCorrection, 0.0)
	assert.Less(t, res.SizeCorrection, 1.0)
	assert.Greater(t, res.RateMMYear, 0.0)
	assert.False(t, math.IsInf(res.RateMMYear, 0) || math.IsNaN(res.RateMMYear))
	assert.InDelta(t, res.RateMMYear*5, res.WallLossMM, 1e-9)

	// Pure function: same input, same output.
	assert.Equal(t, res, Oil(oilFixture()))
}

func TestOil_CoarseParticlesSkipSizeCorrection(t *testing.T) {
	in := oilFixture()
	in.ParticleDiameterM = 0.01
	assert.Equal(t, 1.0, Oil(in).SizeCorrection)
}

func TestSweepMatchesPointwise(t *testing.T) {
	ctx := context.Background()
	xs := GasAreaRange.Samples()

	gas, err := SweepGasArea(ctx, gasFixture(), xs)
	require.NoError(t, err)
	require.Len(t, gas, sweep.DefaultPoints)

	oil, err := SweepOilArea(ctx, oilFixture(), xs)
	require.NoError(t, err)

	for i, x := range xs {
		g := gasFixture()
		g.PipeAreaM2 = x
		want, err := Gas(g)
		require.NoError(t, err)
		assert.Equal(t, want.RateMMYear, gas[i].Y)

		o := oilFixture()
		o.PipeAreaM2 = x
		assert.Equal(t, Oil(o).RateMMYear, oil[i].Y)
	}
	// Larger section, thinner spread.
	assert.Greater(t, gas[0].Y, gas[len(gas)-1].Y)
}

func TestHandler_GasCalc(t *testing.T) {
	h := &Handler{}
	body := `{"sand_rate_kg_s":0.01,"geometry":"角形","impact_angle_deg":30,"wall_density_kg_m3":7850,
		"pipe_area_m2":0.03,"brinell_hardness":220,"exposure_years":5,"particle_velocity_m_s":20}`

	rec := httptest.NewRecorder()
	h.GasCalc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/erosion/gas/calc", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res GasResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 1.0, res.SharpnessFactor)

	rec = httptest.NewRecorder()
	h.GasCalc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"geometry":"oval"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_OilSweep(t *testing.T) {
	h := &Handler{}
	payload, err := json.Marshal(map[string]any{
		"input": oilFixture(),
		"range": sweep.Range{From: 0.05, To: 0.1, Points: 6},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.OilSweep(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code)

	var curve sweep.Curve
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&curve))
	assert.Len(t, curve.Points, 6)
	assert.Equal(t, 0.05, curve.Points[0].X)
}

func assertFinite(t *testing.T, fields map[string]float64) {
	t.Helper()
	for name, v := range fields {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s = %v", name, v)
	}
}

func TestMinimalInputsFinite(t *testing.T) {
	const tiny = 1e-9
	for _, g := range []Geometry{GeometryCircular, GeometrySemicircular, GeometryAngular} {
		gas, err := Gas(GasInput{
			SandRateKgS: tiny, Geometry: g, ImpactAngleDeg: tiny, WallDensityKgM3: tiny, PipeAreaM2: tiny,
			BrinellHardness: tiny, ExposureYears: tiny, ParticleVelocityMS: tiny,
		})
		require.NoError(t, err)
		assertFinite(t, map[string]float64{
			"sharpness": gas.SharpnessFactor, "ratio": gas.ErosionRatio, "rate m/s": gas.RateMS,
			"rate mm/year": gas.RateMMYear, "wall loss": gas.WallLossMM,
		})
	}

	oil := Oil(OilInput{
		SandRateKgS: tiny, ImpactVelocityMS: tiny, TargetDensityKgM3: tiny, PipeAreaM2: tiny,
		ImpactAngleDeg: tiny, MixtureDensityKgM3: tiny, ParticleDiameterM: tiny, ExposureYears: tiny,
		ParticleDensityKgM3: tiny, MixtureViscosityPaS: tiny,
	})
	assertFinite(t, map[string]float64{
		"angle function": oil.AngleFunction, "size correction": oil.SizeCorrection,
		"rate": oil.RateMMYear, "wall loss": oil.WallLossMM,
	})
}

func TestGas_Repeatable(t *testing.T) {
	first, err := Gas(gasFixture())
	require.NoError(t, err)
	second, err := Gas(gasFixture())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
