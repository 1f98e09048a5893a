package pressure

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCasingClass = errors.New("unknown casing class")

// CasingClass groups casing strings by the load cases that govern them.
type CasingClass string

const (
	SurfaceTechnical CasingClass = "surface_technical"
	ProductionLiner  CasingClass = "production_liner"
)

var casingLabels = map[string]CasingClass{
	"surface_technical": SurfaceTechnical,
	"表层套管和技术套管":         SurfaceTechnical,
	"production_liner":  ProductionLiner,
	"生产套管和生产尾管":         ProductionLiner,
}

func ParseCasingClass(s string) (CasingClass, error) {
	c, ok := casingLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCasingClass, s)
	}
	return c, nil
}

func (c CasingClass) valid() error {
	if c != SurfaceTechnical && c != ProductionLiner {
		return fmt.Errorf("%w: %q", ErrUnknownCasingClass, string(c))
	}
	return nil
}

func (c *CasingClass) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*c = ""
		return nil
	}
	parsed, err := ParseCasingClass(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
