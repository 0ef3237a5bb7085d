package document

import (
	"math"
	"time"

	"github.com/inkbrush/inkbrush/backend-go/internal/typeid"
)

// NewSampleDocument builds a small demo board: one long calligraphic wave
// drawn without device pressure (so width comes from velocity simulation)
// and one slow dot-like flourish. Used by the playground board and the wasm
// frontend before any real document is loaded.
func NewSampleDocument(boardID string) *BoardDocument {
	now := time.Now().UTC().Format(time.RFC3339)

	doc := NewEmptyDocument(boardID, "Untitled")
	doc.Board.CreatedAt = now
	doc.Board.UpdatedAt = now

	wave := Stroke{
		ID:    typeid.NewStrokeID(),
		Color: "#1a1a2e",
		Settings: StrokeSettings{
			Size:             14,
			Thinning:         0.7,
			Smoothing:        0.5,
			Color:            "#1a1a2e",
			SimulatePressure: true,
		},
	}
	// A wave drawn with varying speed: the crests are drawn slowly and the
	// slopes quickly, so simulated pressure swells at the crests.
	t := 0.0
	for i := 0; i < 48; i++ {
		phase := float64(i) / 47 * 4 * math.Pi
		x := 160 + float64(i)*20
		y := 360 + 90*math.Sin(phase)
		t += 8 + 10*math.Abs(math.Cos(phase))
		wave.Points = append(wave.Points, Sample{X: x, Y: y, Time: t})
	}

	dot := Stroke{
		ID:    typeid.NewStrokeID(),
		Color: "#8c2f39",
		Settings: StrokeSettings{
			Size:             24,
			Thinning:         0.6,
			Smoothing:        0.5,
			Color:            "#8c2f39",
			SimulatePressure: true,
		},
	}
	for i := 0; i < 6; i++ {
		angle := float64(i) / 5 * math.Pi
		dot.Points = append(dot.Points, Sample{
			X:    1080 + 6*math.Cos(angle),
			Y:    200 + 6*math.Sin(angle),
			Time: float64(i) * 40,
		})
	}

	doc.Strokes = []Stroke{wave, dot}
	return doc
}
