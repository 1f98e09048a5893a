package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownWellType  = errors.New("unknown well type")
	ErrUnknownFormation = errors.New("unknown formation")
)

type WellType string

const (
	GasWell WellType = "gas"
	OilWell WellType = "oil"
)

type Formation string

const (
	NonPlastic Formation = "nonplastic"
	Plastic    Formation = "plastic"
)

var wellLabels = map[string]WellType{
	"gas":  GasWell,
	"气井":   GasWell,
	"气井数据": GasWell,
	"oil":  OilWell,
	"油井":   OilWell,
	"油井数据": OilWell,
}

var formationLabels = map[string]Formation{
	"nonplastic": NonPlastic,
	"非塑性蠕变地层":    NonPlastic,
	"plastic":    Plastic,
	"塑性蠕变地层":     Plastic,
}

func ParseWellType(s string) (WellType, error) {
	w, ok := wellLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownWellType, s)
	}
	return w, nil
}

func ParseFormation(s string) (Formation, error) {
	f, ok := formationLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormation, s)
	}
	return f, nil
}

func (w *WellType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*w = ""
		return nil
	}
	parsed, err := ParseWellType(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (f *Formation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*f = ""
		return nil
	}
	parsed, err := ParseFormation(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
