package erosion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownGeometry = errors.New("unknown impingement geometry")

// Geometry is the sand particle shape class of the Tulsa angle model.
type Geometry string

const (
	GeometryCircular     Geometry = "circular"
	GeometrySemicircular Geometry = "semicircular"
	GeometryAngular      Geometry = "angular"
)

var sharpness = map[Geometry]float64{
	GeometryCircular:     0.2,
	GeometrySemicircular: 0.53,
	GeometryAngular:      1.0,
}

var geometryLabels = map[string]Geometry{
	"circular":     GeometryCircular,
	"圆形":           GeometryCircular,
	"semicircular": GeometrySemicircular,
	"半圆形":          GeometrySemicircular,
	"angular":      GeometryAngular,
	"角形":           GeometryAngular,
}

func ParseGeometry(s string) (Geometry, error) {
	g, ok := geometryLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGeometry, s)
	}
	return g, nil
}

// Sharpness returns the particle sharpness factor F_s.
func (g Geometry) Sharpness() (float64, error) {
	fs, ok := sharpness[g]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGeometry, string(g))
	}
	return fs, nil
}

// UnmarshalJSON accepts either label; an empty string leaves the geometry unset.
func (g *Geometry) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*g = ""
		return nil
	}
	parsed, err := ParseGeometry(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
