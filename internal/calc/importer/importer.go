// Package importer fills assessment inputs from the parameter workbook. The first sheet
// holds one parameter per row, value in column B, in a fixed order.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"CasingSafe/internal/calc/assessment"
	"CasingSafe/internal/calc/corrosion"
	"CasingSafe/internal/calc/erosion"
	"CasingSafe/internal/calc/failure"
	"CasingSafe/internal/calc/pressure"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("empty sheet")

// Data rows of the workbook, header excluded.
const (
	rowVelocity = iota
	rowSandRate
	rowAngle
	rowGeometry
	rowWallDensity
	rowPipeArea
	rowExposure
	rowParticleDiameter
	rowImpactVelocity
	rowTargetDensity
	rowMixtureDensity
	rowFriction
	rowRotarySpeed
	rowWearFactor
	rowToolJoint
	rowDrilledLength
	rowROP
	_ // groove radius of the geometric wear variant, not imported
	rowMaterial
	rowTemperature
	rowCO2
	rowH2S
	rowChloride
	rowPH
	rowYears
	rowCasingClass
	rowMudDensity
	rowEmptying
	rowMinDensity
	rowWaterDensity
	rowDepth
	rowPoisson
	rowMaxDensity
	rowGasDensity
	rowReservoirDepth
	rowPorePressure
	rowGradient
	rowGrade
	rowOuterDiameter
	rowInnerDiameter
	rowNextDepth
	rowAxialLoad
	rowAzimuthChange
	rowInclinationChange
	rowInclination
	rowPipeWeight
	rowSectionLength

	rowCount
)

// Load reads the first sheet of an xlsx workbook.
func Load(r io.Reader, well assessment.WellType, formation assessment.Formation) (assessment.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return assessment.Input{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return assessment.Input{}, fmt.Errorf("read sheet: %w", err)
	}
	return FromRows(rows, well, formation)
}

// FromRows maps sheet rows (header first) onto the model inputs.
func FromRows(rows [][]string, well assessment.WellType, formation assessment.Formation) (assessment.Input, error) {
	if len(rows) < 2 {
		return assessment.Input{}, ErrEmptySheet
	}
	s := &sheet{rows: rows[1:]}
	in := assessment.Input{WellType: well, Formation: formation}
	class := s.casingClass(rowCasingClass)

	switch well {
	case assessment.GasWell:
		in.GasErosion = erosion.GasInput{
			ParticleVelocityMS: s.float(rowVelocity),
			SandRateKgS:        s.float(rowSandRate),
			ImpactAngleDeg:     s.float(rowAngle),
			Geometry:           s.geometry(rowGeometry),
			WallDensityKgM3:    s.float(rowWallDensity),
			PipeAreaM2:         s.float(rowPipeArea),
			ExposureYears:      s.float(rowExposure),
		}
		in.GasInternal = pressure.GasInput{
			MaxDensity:     s.float(rowMaxDensity),
			GasDensity:     s.float(rowGasDensity),
			DepthM:         s.float(rowDepth),
			NextDepth:      s.float(rowNextDepth),
			ReservoirDepth: s.float(rowReservoirDepth),
			PorePressure:   s.float(rowPorePressure),
			Casing:         class,
		}
	case assessment.OilWell:
		in.OilErosion = erosion.OilInput{
			SandRateKgS:        s.float(rowSandRate),
			ParticleDiameterM:  s.float(rowParticleDiameter),
			ExposureYears:      s.float(rowExposure),
			ImpactAngleDeg:     s.float(rowAngle),
			ImpactVelocityMS:   s.float(rowImpactVelocity),
			TargetDensityKgM3:  s.float(rowTargetDensity),
			PipeAreaM2:         s.float(rowPipeArea),
			MixtureDensityKgM3: s.float(rowMixtureDensity),
		}
		in.OilInternal = pressure.OilInput{
			MaxDensity:     s.float(rowMaxDensity),
			WaterDensity:   s.float(rowWaterDensity),
			GradientMPaM:   s.float(rowGradient),
			DepthM:         s.float(rowDepth),
			ReservoirDepth: s.float(rowReservoirDepth),
			Casing:         class,
		}
	default:
		return assessment.Input{}, fmt.Errorf("%w: %q", assessment.ErrUnknownWellType, string(well))
	}

	in.Wear.Friction = s.float(rowFriction)
	in.Wear.RotarySpeedRPM = s.float(rowRotarySpeed)
	in.Wear.WearFactorPerPa = s.float(rowWearFactor)
	in.Wear.ToolJointDiameterMM = s.float(rowToolJoint)
	in.Wear.DrilledLengthM = s.float(rowDrilledLength)
	in.Wear.ROPMH = s.float(rowROP)
	in.Wear.CasingInnerRadiusMM = s.float(rowInnerDiameter) / 2
	in.Wear.AxialLoadN = s.float(rowAxialLoad)
	in.Wear.AzimuthChangeDeg = s.float(rowAzimuthChange)
	in.Wear.InclinationChangeDeg = s.float(rowInclinationChange)
	in.Wear.InclinationDeg = s.float(rowInclination)
	in.Wear.PipeWeightNM = s.float(rowPipeWeight)
	in.Wear.SectionLengthM = s.float(rowSectionLength)

	in.Corrosion = corrosion.Input{
		Material:     s.material(rowMaterial),
		TemperatureC: s.float(rowTemperature),
		CO2MPa:       s.float(rowCO2),
		H2SMPa:       s.float(rowH2S),
		ChlorideMgL:  s.float(rowChloride),
		PH:           s.float(rowPH),
		Years:        s.float(rowYears),
	}

	switch formation {
	case assessment.NonPlastic:
		in.NonPlastic = pressure.NonPlasticInput{
			MudDensity:   s.float(rowMudDensity),
			Emptying:     s.float(rowEmptying),
			MinDensity:   s.float(rowMinDensity),
			WaterDensity: s.float(rowWaterDensity),
			DepthM:       s.float(rowDepth),
			Casing:       class,
		}
	case assessment.Plastic:
		in.Plastic = pressure.PlasticInput{
			MinDensity:   s.float(rowMinDensity),
			WaterDensity: s.float(rowWaterDensity),
			Emptying:     s.float(rowEmptying),
			Poisson:      s.float(rowPoisson),
			DepthM:       s.float(rowDepth),
			Casing:       class,
		}
	default:
		return assessment.Input{}, fmt.Errorf("%w: %q", assessment.ErrUnknownFormation, string(formation))
	}

	in.Casing = assessment.Casing{
		Grade:           s.grade(rowGrade),
		InnerDiameterMM: s.float(rowInnerDiameter),
		OuterDiameterMM: s.float(rowOuterDiameter),
	}

	if s.err != nil {
		return assessment.Input{}, s.err
	}
	return in, nil
}

// sheet reads column B cells and keeps the first error.
type sheet struct {
	rows [][]string
	err  error
}

func (s *sheet) text(row int) string {
	if s.err != nil {
		return ""
	}
	if row >= len(s.rows) || len(s.rows[row]) < 2 {
		s.err = fmt.Errorf("row %d: missing value", row+2)
		return ""
	}
	return strings.TrimSpace(s.rows[row][1])
}

func (s *sheet) float(row int) float64 {
	v, err := toFloat(s.text(row))
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("row %d: %w", row+2, err)
	}
	return v
}

func (s *sheet) geometry(row int) erosion.Geometry {
	g, err := erosion.ParseGeometry(s.text(row))
	s.keep(row, err)
	return g
}

func (s *sheet) material(row int) corrosion.Material {
	m, err := corrosion.ParseMaterial(s.text(row))
	s.keep(row, err)
	return m
}

func (s *sheet) casingClass(row int) pressure.CasingClass {
	c, err := pressure.ParseCasingClass(s.text(row))
	s.keep(row, err)
	return c
}

func (s *sheet) grade(row int) failure.Grade {
	g, err := failure.ParseGrade(s.text(row))
	s.keep(row, err)
	return g
}

func (s *sheet) keep(row int, err error) {
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("row %d: %w", row+2, err)
	}
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
