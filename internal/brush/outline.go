package brush

// Options are the per-stroke brush settings consumed by the outline builder.
type Options struct {
	// Size is the full stroke width at maximum pressure.
	Size float64
	// Thinning controls how strongly pressure modulates width:
	// 0 gives uniform width, 1 the full dynamic range down to zero.
	Thinning float64
	// Smoothing is reserved; the outline algorithm does not consume it yet.
	Smoothing float64
	// SimulatePressure selects velocity-based pressure when the device
	// reports none. Pressure resolution happens upstream of the builder.
	SimulatePressure bool
}

// DefaultOptions are the brush settings applied to a fresh stroke.
func DefaultOptions() Options {
	return Options{
		Size:             10,
		Thinning:         0.7,
		Smoothing:        0.5,
		SimulatePressure: true,
	}
}

// BuildOutline converts an ordered point sequence with resolved pressures
// into a closed polygon bounding the filled silhouette of the stroke.
//
// The polygon is the left offset edge walked forward along the stroke
// followed by the right offset edge walked backward, so its length is
// exactly twice the input length. Strokes of fewer than two points have no
// silhouette and yield a nil outline; callers must treat that as "draw
// nothing". Self-crossing input strokes can produce a self-intersecting
// polygon, which the fill rule tolerates.
func BuildOutline(points []StrokePoint, opts Options) []Point {
	if len(points) < 2 {
		return nil
	}

	n := len(points)
	left := make([]Point, 0, n)
	right := make([]Point, 0, n)

	// Running state for the two smoothing passes: an exponential moving
	// average over pressure and a 2-tap average over direction.
	prevPressure := points[0].Pressure
	prevDir := Pt(points[1].X, points[1].Y).Sub(Pt(points[0].X, points[0].Y)).Normalize()

	for i, pt := range points {
		tapered := pt.Pressure * TaperFactor(i, n)
		pressure := lerp(prevPressure, tapered, 0.5)
		prevPressure = pressure

		width := opts.Size * (1 - opts.Thinning*(1-pressure))

		// The last point has no forward tangent; reuse the previous one.
		var dir Point
		if i < n-1 {
			next := points[i+1]
			dir = Pt(next.X, next.Y).Sub(Pt(pt.X, pt.Y)).Normalize()
		} else {
			dir = prevDir
		}

		// Average with the previous direction before taking the normal so
		// sharp turns do not flip the offset from one point to the next.
		normal := dir.Add(prevDir).Normalize().Perp()
		offset := normal.Mul(width / 2)

		p := Pt(pt.X, pt.Y)
		left = append(left, p.Sub(offset))
		right = append(right, p.Add(offset))

		prevDir = dir
	}

	outline := left
	for i := n - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	return outline
}
