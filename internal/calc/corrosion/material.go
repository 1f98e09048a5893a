package corrosion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMaterial = errors.New("unknown material grade")

type Material string

const (
	CarbonSteel Material = "carbon_steel"
	Cr1         Material = "1cr"
	Cr3         Material = "3cr"
)

// Chromium content slows CO2 attack; factors are relative to plain carbon steel.
var materialFactors = map[Material]float64{
	CarbonSteel: 1.0,
	Cr1:         0.6,
	Cr3:         0.3,
}

var materialLabels = map[string]Material{
	"carbon_steel": CarbonSteel,
	"carbon steel": CarbonSteel,
	"碳钢":           CarbonSteel,
	"1cr":          Cr1,
	"3cr":          Cr3,
}

func ParseMaterial(s string) (Material, error) {
	m, ok := materialLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
	}
	return m, nil
}

func (m Material) Factor() (float64, error) {
	f, ok := materialFactors[m]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, string(m))
	}
	return f, nil
}

func (m *Material) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*m = ""
		return nil
	}
	parsed, err := ParseMaterial(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
