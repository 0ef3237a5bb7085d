package brush

// Pressure simulation constants. Velocity is measured in canvas units per
// millisecond; anything at or above maxVelocity maps to the thinnest line.
const (
	maxVelocity = 2.5
	minPressure = 0.1
	maxPressure = 1.0

	// NeutralPressure is returned when there is no velocity information yet
	// and is also one of the sentinel values meaning "no real sensor reading".
	NeutralPressure = 0.5

	// TipPressure is the pressure forced onto the first point of every
	// stroke so the entry tip starts sharp.
	TipPressure = 0.1
)

// StrokePoint is a sample whose pressure has been resolved.
type StrokePoint struct {
	X        float64
	Y        float64
	Pressure float64
	Time     float64
}

// ResolvePressure produces an effective pressure value for a new sample at
// (x, y, t) given the previously accepted points of the in-progress stroke.
//
// A device reading that is neither 0 nor 0.5 is trusted as-is. Readings of
// exactly 0 or 0.5 are indistinguishable from "no pressure sensor" on common
// pointer implementations, so those fall through to velocity-based
// simulation: slower motion yields a thicker line, faster motion a thinner
// one, clamped to [0.1, 1.0].
func ResolvePressure(raw float64, hasRaw bool, prior []StrokePoint, x, y, t float64) float64 {
	if hasRaw && raw != 0 && raw != NeutralPressure {
		return raw
	}

	if len(prior) == 0 {
		return NeutralPressure
	}

	last := prior[len(prior)-1]
	d := Pt(x, y).Distance(Pt(last.X, last.Y))

	// Guard against missing or identical timestamps.
	dt := t - last.Time
	if dt < 1 {
		dt = 1
	}

	velocity := clamp(d/dt, 0, maxVelocity)
	return clamp(1-velocity/maxVelocity, minPressure, maxPressure)
}
