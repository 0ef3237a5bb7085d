package brush

// Sample is a raw pointer sample as captured by the input surface. Pressure
// is nil when the device reports none; Time is a monotonic clock reading in
// milliseconds.
type Sample struct {
	X        float64
	Y        float64
	Pressure *float64
	Time     float64
}

// ResolveSamples converts raw samples into stroke points with effective
// pressures. With simulate set, missing or sentinel device pressure is
// replaced by the velocity heuristic; otherwise missing pressure defaults
// to the neutral value. The first point is always forced to TipPressure so
// every stroke enters sharp.
func ResolveSamples(samples []Sample, simulate bool) []StrokePoint {
	points := make([]StrokePoint, 0, len(samples))
	for _, s := range samples {
		var pressure float64
		switch {
		case len(points) == 0:
			pressure = TipPressure
		case simulate:
			var raw float64
			var hasRaw bool
			if s.Pressure != nil {
				raw, hasRaw = *s.Pressure, true
			}
			pressure = ResolvePressure(raw, hasRaw, points, s.X, s.Y, s.Time)
		case s.Pressure != nil:
			pressure = *s.Pressure
		default:
			pressure = NeutralPressure
		}

		points = append(points, StrokePoint{X: s.X, Y: s.Y, Pressure: pressure, Time: s.Time})
	}
	return points
}
