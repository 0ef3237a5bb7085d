package brush

import (
	"math"
	"testing"
)

func horizontalStroke(n int, spacing, pressure float64) []StrokePoint {
	points := make([]StrokePoint, n)
	for i := range points {
		points[i] = StrokePoint{X: float64(i) * spacing, Y: 20, Pressure: pressure, Time: float64(i) * 10}
	}
	return points
}

func TestBuildOutlineDegenerateStrokes(t *testing.T) {
	opts := DefaultOptions()

	if got := BuildOutline(nil, opts); len(got) != 0 {
		t.Errorf("BuildOutline(nil) returned %d points, want 0", len(got))
	}
	if got := BuildOutline([]StrokePoint{{X: 1, Y: 1, Pressure: 0.5}}, opts); len(got) != 0 {
		t.Errorf("BuildOutline(1 point) returned %d points, want 0", len(got))
	}
}

func TestBuildOutlineLength(t *testing.T) {
	opts := DefaultOptions()
	for _, n := range []int{2, 3, 7, 10, 64} {
		points := horizontalStroke(n, 5, 0.8)
		outline := BuildOutline(points, opts)
		if len(outline) != 2*n {
			t.Errorf("outline of %d points has length %d, want %d", n, len(outline), 2*n)
		}
	}
}

// With thinning disabled the half-width must be size/2 at every point,
// whatever the pressure and taper do: a straight horizontal stroke becomes
// an exact rectangle.
func TestBuildOutlineUniformWidth(t *testing.T) {
	points := horizontalStroke(10, 10, 1.0)
	opts := Options{Size: 10, Thinning: 0}

	outline := BuildOutline(points, opts)
	if len(outline) != 20 {
		t.Fatalf("outline length = %d, want 20", len(outline))
	}

	for i, p := range outline {
		offset := math.Abs(p.Y - 20)
		if math.Abs(offset-5) > 1e-9 {
			t.Errorf("outline[%d] half-width = %v, want 5", i, offset)
		}
		if i < 10 && math.Abs(p.X-float64(i)*10) > 1e-9 {
			t.Errorf("outline[%d].X = %v, want %v", i, p.X, float64(i)*10)
		}
	}

	// Forward edge on one side of the stroke, return edge on the other.
	for i := 0; i < 10; i++ {
		if (outline[i].Y-20)*(outline[len(outline)-1-i].Y-20) >= 0 {
			t.Errorf("point %d and its mirror lie on the same side of the stroke", i)
		}
	}
}

func TestBuildOutlineTwoPoints(t *testing.T) {
	points := []StrokePoint{
		{X: 0, Y: 0, Pressure: 0.5, Time: 0},
		{X: 10, Y: 0, Pressure: 0.5, Time: 16},
	}

	outline := BuildOutline(points, DefaultOptions())
	if len(outline) != 4 {
		t.Fatalf("outline length = %d, want 4", len(outline))
	}
	for i, p := range outline {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("outline[%d] = %+v, want finite coordinates", i, p)
		}
	}
}

// Duplicate points produce zero-length direction vectors, which must
// degrade to zero offsets rather than NaN.
func TestBuildOutlineDuplicatePoints(t *testing.T) {
	points := []StrokePoint{
		{X: 5, Y: 5, Pressure: 0.5, Time: 0},
		{X: 5, Y: 5, Pressure: 0.5, Time: 10},
		{X: 5, Y: 5, Pressure: 0.5, Time: 20},
	}

	outline := BuildOutline(points, DefaultOptions())
	if len(outline) != 6 {
		t.Fatalf("outline length = %d, want 6", len(outline))
	}
	for i, p := range outline {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("outline[%d] = %+v, want finite coordinates", i, p)
		}
		if p.X != 5 || p.Y != 5 {
			t.Errorf("outline[%d] = %+v, want the degenerate point (5, 5)", i, p)
		}
	}
}

func TestBuildOutlineThinningRange(t *testing.T) {
	// Full thinning: width ranges from 0 at pressure 0 to size at pressure 1.
	low := horizontalStroke(20, 10, 0)
	high := horizontalStroke(20, 10, 1)
	opts := Options{Size: 8, Thinning: 1}

	lowOutline := BuildOutline(low, opts)
	highOutline := BuildOutline(high, opts)

	widthAt := func(outline []Point, i int) float64 {
		return outline[i].Distance(outline[len(outline)-1-i])
	}

	// Compare mid-stroke widths, away from the taper windows.
	if lw, hw := widthAt(lowOutline, 10), widthAt(highOutline, 10); lw >= hw {
		t.Errorf("low-pressure width %v not below high-pressure width %v", lw, hw)
	}
	if hw := widthAt(highOutline, 10); hw > 8+1e-9 {
		t.Errorf("high-pressure width %v exceeds size 8", hw)
	}
}
