package brush

// maxTaperPoints bounds the taper window at either end of a stroke.
const maxTaperPoints = 5

// TaperFactor computes a multiplicative easing factor in [0, 1] that
// suppresses pressure near the two ends of a stroke, simulating the brush
// tip landing and lifting.
//
// The taper window covers up to 5 points at each end, shrinking to a third
// of the stroke for short strokes; strokes of 1-2 points get no taper at
// all. Inside a window the factor follows a cubic ease-out so width ramps
// quickly away from the sharp tip.
func TaperFactor(index, total int) float64 {
	taperLength := total / 3
	if taperLength > maxTaperPoints {
		taperLength = maxTaperPoints
	}
	if taperLength == 0 {
		return 1
	}

	if index < taperLength {
		return cubicOut(float64(index) / float64(taperLength))
	}
	if index > total-1-taperLength {
		return cubicOut(float64(total-1-index) / float64(taperLength))
	}
	return 1
}

// cubicOut is the standard cubic ease-out curve 1-(1-t)^3.
func cubicOut(t float64) float64 {
	t2 := 1 - t
	return 1 - t2*t2*t2
}
