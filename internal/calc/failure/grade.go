package failure

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownGrade = errors.New("unknown casing grade")

type Grade string

const (
	N80  Grade = "N80"
	P110 Grade = "P110"
)

// YieldMPa is the yield stress used for residual strength. Only P110 is rated higher;
// every other grade is treated as N80.
func (g Grade) YieldMPa() float64 {
	if g == P110 {
		return 800
	}
	return 600
}

func ParseGrade(s string) (Grade, error) {
	switch Grade(strings.ToUpper(strings.TrimSpace(s))) {
	case N80:
		return N80, nil
	case P110:
		return P110, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGrade, s)
}

func (g *Grade) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*g = ""
		return nil
	}
	parsed, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
