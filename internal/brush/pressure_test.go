package brush

import (
	"math"
	"testing"
)

func TestResolvePressure(t *testing.T) {
	prior := []StrokePoint{{X: 0, Y: 0, Pressure: 0.5, Time: 0}}

	tests := []struct {
		name   string
		raw    float64
		hasRaw bool
		prior  []StrokePoint
		x, y   float64
		time   float64
		want   float64
	}{
		{
			name:   "device reading trusted",
			raw:    0.73,
			hasRaw: true,
			prior:  prior,
			x:      100, y: 0, time: 1,
			want: 0.73,
		},
		{
			name:   "zero reading falls back to simulation",
			raw:    0,
			hasRaw: true,
			prior:  nil,
			want:   0.5,
		},
		{
			name:   "neutral reading falls back to simulation",
			raw:    0.5,
			hasRaw: true,
			prior:  nil,
			want:   0.5,
		},
		{
			name:  "no prior points yields neutral",
			prior: nil,
			x:     10, y: 10, time: 5,
			want: 0.5,
		},
		{
			name:  "stationary pointer yields maximum pressure",
			prior: prior,
			x:     0, y: 0, time: 100,
			want: 1.0,
		},
		{
			name:  "fast motion clamps to minimum pressure",
			prior: prior,
			x:     1000, y: 0, time: 1,
			want: 0.1,
		},
		{
			name:  "half of max velocity yields half the range",
			prior: prior,
			x:     1.25, y: 0, time: 1,
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePressure(tt.raw, tt.hasRaw, tt.prior, tt.x, tt.y, tt.time)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ResolvePressure() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Coincident samples with identical timestamps must not divide by zero.
func TestResolvePressureZeroDistanceZeroTime(t *testing.T) {
	prior := []StrokePoint{{X: 5, Y: 5, Pressure: 0.5, Time: 10}}

	got := ResolvePressure(0, false, prior, 5, 5, 10)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("ResolvePressure() = %v, want finite", got)
	}
	if got < 0.1 || got > 1.0 {
		t.Errorf("ResolvePressure() = %v, want within [0.1, 1.0]", got)
	}
}

func TestResolveSamplesForcesTipPressure(t *testing.T) {
	device := 0.9
	samples := []Sample{
		{X: 0, Y: 0, Pressure: &device, Time: 0},
		{X: 3, Y: 0, Pressure: &device, Time: 10},
	}

	points := ResolveSamples(samples, true)
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Pressure != TipPressure {
		t.Errorf("first point pressure = %v, want %v", points[0].Pressure, TipPressure)
	}
	if points[1].Pressure != 0.9 {
		t.Errorf("second point pressure = %v, want 0.9", points[1].Pressure)
	}
}

func TestResolveSamplesWithoutSimulation(t *testing.T) {
	samples := []Sample{
		{X: 0, Y: 0, Time: 0},
		{X: 3, Y: 0, Time: 10},
		{X: 6, Y: 0, Time: 20},
	}

	points := ResolveSamples(samples, false)
	if points[1].Pressure != NeutralPressure {
		t.Errorf("missing pressure resolved to %v, want %v", points[1].Pressure, NeutralPressure)
	}
	if points[2].Pressure != NeutralPressure {
		t.Errorf("missing pressure resolved to %v, want %v", points[2].Pressure, NeutralPressure)
	}
}
