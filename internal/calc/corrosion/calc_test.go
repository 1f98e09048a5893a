package corrosion

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() Input {
	return Input{
		TemperatureC: 60,
		CO2MPa:       0.2,
		ChlorideMgL:  20000,
		PH:           5.5,
		Material:     CarbonSteel,
		Years:        10,
	}
}

func TestCalculate_CO2(t *testing.T) {
	res, err := Calculate(fixture())
	require.NoError(t, err)

	assert.Equal(t, RegimeCO2, res.Regime)
	assert.InDelta(t, 7.3938, res.BaseMMYear, 1e-4)
	assert.Equal(t, 1.0, res.ScaleFactor)
	assert.InDelta(t, 0.49993, res.PHFactor, 1e-5)
	assert.InDelta(t, 4.1025, res.RateMMYear, 1e-4)
	assert.InDelta(t, res.RateMMYear*10, res.WallLossMM, 1e-9)
}

func TestCalculate_CO2H2S(t *testing.T) {
	in := fixture()
	in.H2SMPa = 0.01
	res, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, RegimeCO2H2S, res.Regime)
	assert.InDelta(t, 2.6303, res.RateMMYear, 1e-4)
	assert.Equal(t, "CO2 and H2S coexisting corrosion", ChartTitle(in))
}

func TestCalculate_AnyH2SSwitchesRegime(t *testing.T) {
	co2, err := Calculate(fixture())
	require.NoError(t, err)

	in := fixture()
	in.H2SMPa = 1e-9
	mixed, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, RegimeCO2H2S, mixed.Regime)
	assert.NotEqual(t, co2.RateMMYear, mixed.RateMMYear)
	assert.Equal(t, "CO2 corrosion", ChartTitle(fixture()))
}

func TestCalculate_MaterialFactor(t *testing.T) {
	base, err := Calculate(fixture())
	require.NoError(t, err)

	for _, in := range []Input{fixture(), func() Input { i := fixture(); i.H2SMPa = 0.01; return i }()} {
		ref, err := Calculate(in)
		require.NoError(t, err)
		in.Material = Cr3
		alloy, err := Calculate(in)
		require.NoError(t, err)
		assert.InDelta(t, 0.3, alloy.RateMMYear/ref.RateMMYear, 1e-12)
	}

	in := fixture()
	in.Material = "13cr"
	_, err = Calculate(in)
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	assert.Greater(t, base.RateMMYear, 0.0)
}

func TestCalculate_WithoutCO2(t *testing.T) {
	in := fixture()
	in.CO2MPa = 0
	in.H2SMPa = 0.01
	in.Years = 1
	res, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, RegimeCO2H2S, res.Regime)
	assert.Zero(t, res.BaseMMYear)
	// Only the sulfide term: 0.03 * sqrt(0.1 bar) * chloride factor.
	assert.InDelta(t, 0.010529, res.RateMMYear, 1e-6)
	assert.Equal(t, res.RateMMYear, res.WallLossMM)

	in.H2SMPa = 0
	res, err = Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, RegimeCO2, res.Regime)
	assert.Zero(t, res.RateMMYear)
}

func TestCalculate_MinimalInputsFinite(t *testing.T) {
	const tiny = 1e-9
	for _, h2s := range []float64{0, tiny} {
		for _, m := range []Material{CarbonSteel, Cr1, Cr3} {
			res, err := Calculate(Input{
				TemperatureC: tiny, CO2MPa: tiny, H2SMPa: h2s, ChlorideMgL: tiny, PH: tiny,
				Material: m, Years: tiny,
			})
			require.NoError(t, err)
			for name, v := range map[string]float64{
				"base": res.BaseMMYear, "scale": res.ScaleFactor, "ph": res.PHFactor,
				"rate": res.RateMMYear, "wall loss": res.WallLossMM,
			} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "h2s %g %s: %s = %v", h2s, m, name, v)
			}
		}
	}
}

func TestCalculate_Repeatable(t *testing.T) {
	for _, h2s := range []float64{0, 0.01} {
		in := fixture()
		in.H2SMPa = h2s
		first, err := Calculate(in)
		require.NoError(t, err)
		second, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestParseMaterial(t *testing.T) {
	for in, want := range map[string]Material{
		"碳钢":           CarbonSteel,
		"Carbon Steel": CarbonSteel,
		"1Cr":          Cr1,
		"3cr":          Cr3,
	} {
		got, err := ParseMaterial(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseMaterial("duplex")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestSweepTemperature(t *testing.T) {
	xs := TemperatureRange.Samples()
	points, err := SweepTemperature(context.Background(), fixture(), xs)
	require.NoError(t, err)
	require.Len(t, points, len(xs))
	assert.Equal(t, 0.001, points[0].X)

	for i, p := range points {
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0), "x=%g", p.X)
		in := fixture()
		in.TemperatureC = xs[i]
		want, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, want.RateMMYear, p.Y)
	}
}

func TestHandler_Calc(t *testing.T) {
	body := `{"temperature_c":60,"p_co2_mpa":0.2,"p_h2s_mpa":0,"chloride_mg_l":20000,"ph":5.5,"material":"碳钢","years":1}`
	rec := httptest.NewRecorder()
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/corrosion/calc", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, RegimeCO2, res.Regime)
	assert.InDelta(t, 4.1025, res.WallLossMM, 1e-4)

	rec = httptest.NewRecorder()
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"material":"duplex"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
