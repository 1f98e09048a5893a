package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"CasingSafe/internal/calc/assessment"
	"CasingSafe/internal/calc/corrosion"
	"CasingSafe/internal/calc/erosion"
	"CasingSafe/internal/calc/failure"
	"CasingSafe/internal/calc/pressure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func values() map[int]string {
	return map[int]string{
		rowVelocity:          "20",
		rowSandRate:          "0.00001",
		rowAngle:             "30",
		rowGeometry:          "角形",
		rowWallDensity:       "7850",
		rowPipeArea:          "0.03",
		rowExposure:          "5",
		rowParticleDiameter:  "0.00025",
		rowImpactVelocity:    "10",
		rowTargetDensity:     "7850",
		rowMixtureDensity:    "900",
		rowFriction:          "0.25",
		rowRotarySpeed:       "60",
		rowWearFactor:        "1e-13",
		rowToolJoint:         "100",
		rowDrilledLength:     "300",
		rowROP:               "10",
		rowMaterial:          "碳钢",
		rowTemperature:       "60",
		rowCO2:               "0.2",
		rowH2S:               "0",
		rowChloride:          "20000",
		rowPH:                "5.5",
		rowYears:             "0.1",
		rowCasingClass:       "表层套管和技术套管",
		rowMudDensity:        "1.2",
		rowEmptying:          "0.3",
		rowMinDensity:        "1.1",
		rowWaterDensity:      "1.0",
		rowDepth:             "2000",
		rowPoisson:           "0.3",
		rowMaxDensity:        "1.5",
		rowGasDensity:        "0.2",
		rowReservoirDepth:    "3000",
		rowPorePressure:      "40",
		rowGradient:          "0.0105",
		rowGrade:             "N80",
		rowOuterDiameter:     "139.7",
		rowInnerDiameter:     "121.36",
		rowNextDepth:         "3000",
		rowAxialLoad:         "0",
		rowAzimuthChange:     "0",
		rowInclinationChange: "0",
		rowInclination:       "90",
		rowPipeWeight:        "300",
		rowSectionLength:     "30",
	}
}

func sheetRows(v map[int]string) [][]string {
	rows := [][]string{{"Parameter", "Value"}}
	for i := 0; i < rowCount; i++ {
		rows = append(rows, []string{"p", v[i]})
	}
	return rows
}

func workbook(t *testing.T, v map[int]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range sheetRows(v) {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestFromRows_Gas(t *testing.T) {
	in, err := FromRows(sheetRows(values()), assessment.GasWell, assessment.NonPlastic)
	require.NoError(t, err)

	assert.Equal(t, erosion.GasInput{
		SandRateKgS:        0.00001,
		Geometry:           erosion.GeometryAngular,
		ImpactAngleDeg:     30,
		WallDensityKgM3:    7850,
		PipeAreaM2:         0.03,
		ExposureYears:      5,
		ParticleVelocityMS: 20,
	}, in.GasErosion)
	assert.Equal(t, pressure.GasInput{
		MaxDensity:     1.5,
		ReservoirDepth: 3000,
		PorePressure:   40,
		GasDensity:     0.2,
		DepthM:         2000,
		NextDepth:      3000,
		Casing:         pressure.SurfaceTechnical,
	}, in.GasInternal)
	assert.Equal(t, pressure.NonPlasticInput{
		MudDensity:   1.2,
		WaterDensity: 1.0,
		Emptying:     0.3,
		MinDensity:   1.1,
		Casing:       pressure.SurfaceTechnical,
		DepthM:       2000,
	}, in.NonPlastic)

	assert.Equal(t, corrosion.CarbonSteel, in.Corrosion.Material)
	assert.Equal(t, 1e-13, in.Wear.WearFactorPerPa)
	assert.Equal(t, 60.68, in.Wear.CasingInnerRadiusMM)
	assert.Equal(t, assessment.Casing{OuterDiameterMM: 139.7, InnerDiameterMM: 121.36, Grade: failure.N80}, in.Casing)
	assert.Zero(t, in.OilErosion)
	assert.Zero(t, in.Plastic)
}

func TestFromRows_OilPlastic(t *testing.T) {
	v := values()
	v[rowCasingClass] = "production_liner"
	in, err := FromRows(sheetRows(v), assessment.OilWell, assessment.Plastic)
	require.NoError(t, err)

	assert.Equal(t, 0.00025, in.OilErosion.ParticleDiameterM)
	assert.Equal(t, 900.0, in.OilErosion.MixtureDensityKgM3)
	assert.Equal(t, 0.0105, in.OilInternal.GradientMPaM)
	assert.Equal(t, pressure.ProductionLiner, in.OilInternal.Casing)
	assert.Equal(t, 0.3, in.Plastic.Poisson)
	assert.Zero(t, in.GasErosion)
	assert.Zero(t, in.NonPlastic)
}

func TestFromRows_Errors(t *testing.T) {
	_, err := FromRows([][]string{{"Parameter", "Value"}}, assessment.GasWell, assessment.NonPlastic)
	assert.ErrorIs(t, err, ErrEmptySheet)

	v := values()
	v[rowGeometry] = "oval"
	_, err = FromRows(sheetRows(v), assessment.GasWell, assessment.NonPlastic)
	assert.ErrorIs(t, err, erosion.ErrUnknownGeometry)
	assert.ErrorContains(t, err, "row 5")

	v = values()
	v[rowDepth] = "deep"
	_, err = FromRows(sheetRows(v), assessment.OilWell, assessment.NonPlastic)
	assert.ErrorContains(t, err, "row 32")

	v = values()
	v[rowOuterDiameter] = "139.7abc"
	_, err = FromRows(sheetRows(v), assessment.GasWell, assessment.NonPlastic)
	assert.ErrorContains(t, err, "row 40")
	assert.ErrorContains(t, err, `"139.7abc"`)

	_, err = FromRows(sheetRows(values())[:10], assessment.GasWell, assessment.NonPlastic)
	assert.ErrorContains(t, err, "missing value")

	_, err = FromRows(sheetRows(values()), "water", assessment.NonPlastic)
	assert.ErrorIs(t, err, assessment.ErrUnknownWellType)
}

func TestToFloat(t *testing.T) {
	for in, want := range map[string]float64{"12": 12, " 0.25 ": 0.25, "1e-13": 1e-13, "-3": -3} {
		got, err := toFloat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"12abc", "", "1,5", "twelve"} {
		_, err := toFloat(in)
		assert.Error(t, err, in)
	}
}

func TestLoad_Workbook(t *testing.T) {
	in, err := Load(workbook(t, values()), assessment.GasWell, assessment.NonPlastic)
	require.NoError(t, err)
	assert.Equal(t, 20.0, in.GasErosion.ParticleVelocityMS)

	b, err := assessment.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, failure.Safe, b.Assessment.Level)
}

func TestLoad_NotAWorkbook(t *testing.T) {
	_, err := Load(bytes.NewBufferString("not a zip"), assessment.GasWell, assessment.NonPlastic)
	assert.ErrorContains(t, err, "open workbook")
}

func TestHandler_Import(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("well_type", "气井数据"))
	require.NoError(t, mw.WriteField("formation", "非塑性蠕变地层"))
	part, err := mw.CreateFormFile("file", "params.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook(t, values()).Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tools/import/xlsx", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var b assessment.Bundle
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	assert.Equal(t, assessment.GasWell, b.WellType)
	assert.Len(t, b.Curves, 5)
}

func TestHandler_ImportBadSelection(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("well_type", "water"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
