package failure

import "math"

const psiPerMPa = 145.0377

type CollapseRegime string

const (
	RegimeYield      CollapseRegime = "yield"
	RegimePlastic    CollapseRegime = "plastic"
	RegimeTransition CollapseRegime = "transition"
	RegimeElastic    CollapseRegime = "elastic"
)

// apiCollapse holds the API 5C3 collapse coefficients for one yield strength (psi).
type apiCollapse struct {
	yield          float64
	a, b, c, f, g  float64
	yieldPlastic   float64
	plasticTransit float64
	transitElastic float64
}

func newAPICollapse(yieldPsi float64) apiCollapse {
	y := yieldPsi
	a := 2.8762 + 0.10679e-5*y + 0.21301e-10*y*y - 0.53132e-16*y*y*y
	b := 0.026233 + 0.50609e-6*y
	c := -465.93 + 0.030867*y - 0.10483e-7*y*y + 0.36989e-13*y*y*y
	ba := b / a
	q := 3 * ba / (2 + ba)
	f := 46.95e6 * q * q * q / (y * (q - ba) * (1 - q) * (1 - q))
	g := f * ba

	return apiCollapse{
		yield:          y,
		a:              a,
		b:              b,
		c:              c,
		f:              f,
		g:              g,
		yieldPlastic:   (math.Sqrt((a-2)*(a-2)+8*(b+c/y)) + (a - 2)) / (2 * (b + c/y)),
		plasticTransit: y * (a - f) / (c + y*(b-g)),
		transitElastic: (2 + ba) / (3 * ba),
	}
}

// pressure returns the collapse resistance in psi for a diameter to thickness ratio.
func (k apiCollapse) pressure(dt float64) (float64, CollapseRegime) {
	switch {
	case dt <= k.yieldPlastic:
		return 2 * k.yield * (dt - 1) / (dt * dt), RegimeYield
	case dt <= k.plasticTransit:
		return k.yield*(k.a/dt-k.b) - k.c, RegimePlastic
	case dt <= k.transitElastic:
		return k.yield * (k.f/dt - k.g), RegimeTransition
	}
	return 46.95e6 / (dt * (dt - 1) * (dt - 1)), RegimeElastic
}

// CollapseMPa is the API 5C3 collapse resistance of a pipe with outer diameter d and wall t.
func CollapseMPa(yieldMPa, d, t float64) (float64, CollapseRegime) {
	p, regime := newAPICollapse(yieldMPa * psiPerMPa).pressure(d / t)
	return p / psiPerMPa, regime
}
