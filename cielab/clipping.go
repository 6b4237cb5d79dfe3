// based on:
// https://bottosson.github.io/posts/gamutclipping/ (chroma-preserving
// projection, done here by bisection instead of the analytic cusp search)

package cielab

// clipIterations bisection steps take the chroma scale to within 2^-24.
const clipIterations = 24

// clippedLinear returns the linear sRGB value of lc. When lc is outside the
// gamut, lightness and hue are kept and the chroma is scaled down to the
// largest value that still fits.
func (lc LabA) clippedLinear() linearRGB {
	col := lc.linear()
	if col.inGamut() {
		return col
	}

	lo, hi := 0.0, 1.0
	best := lc.scaleChroma(0).linear()
	for range clipIterations {
		t := (lo + hi) / 2
		c := lc.scaleChroma(t).linear()
		if c.inGamut() {
			lo, best = t, c
		} else {
			hi = t
		}
	}

	return linearRGB{
		R: clamp(best.R, 0, 1),
		G: clamp(best.G, 0, 1),
		B: clamp(best.B, 0, 1),
	}
}

func (lc LabA) scaleChroma(t float64) LabA {
	return LabA{
		L:     lc.L,
		A:     lc.A * t,
		B:     lc.B * t,
		Alpha: lc.Alpha,
	}
}
