package document

import "github.com/inkbrush/inkbrush/backend-go/internal/brush"

// EraserColor is the sentinel stroke color meaning "subtract coverage":
// renderers composite such strokes with destination-out instead of painting.
const EraserColor = "eraser"

// Sample is a raw pointer sample as captured by the input surface.
// Pressure is omitted when the device reports none; Time is a monotonic
// clock reading in milliseconds.
type Sample struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Pressure *float64 `json:"pressure,omitempty"`
	Time     float64  `json:"time"`
}

// StrokeSettings are the brush settings frozen into a stroke when it starts.
type StrokeSettings struct {
	Size             float64 `json:"size"`
	Thinning         float64 `json:"thinning"`
	Smoothing        float64 `json:"smoothing"`
	Color            string  `json:"color"`
	SimulatePressure bool    `json:"simulatePressure"`
}

// DefaultSettings returns the brush settings applied to a fresh board.
func DefaultSettings() StrokeSettings {
	opts := brush.DefaultOptions()
	return StrokeSettings{
		Size:             opts.Size,
		Thinning:         opts.Thinning,
		Smoothing:        opts.Smoothing,
		Color:            "#1a1a2e",
		SimulatePressure: opts.SimulatePressure,
	}
}

// BrushOptions converts the settings to the core's option type.
func (s StrokeSettings) BrushOptions() brush.Options {
	return brush.Options{
		Size:             s.Size,
		Thinning:         s.Thinning,
		Smoothing:        s.Smoothing,
		SimulatePressure: s.SimulatePressure,
	}
}

// Stroke is one continuous pointer-down-to-pointer-up ink mark. Points are
// immutable once the stroke is finalized; strokes that never reached two
// points are discarded rather than stored.
type Stroke struct {
	ID       string         `json:"id"`
	Color    string         `json:"color"`
	Settings StrokeSettings `json:"settings"`
	Points   []Sample       `json:"points"`
}

// IsEraser reports whether the stroke subtracts coverage instead of
// painting it.
func (s Stroke) IsEraser() bool {
	return s.Color == EraserColor
}

// ResolvedPoints converts the stroke's raw samples into pressure-resolved
// points ready for outline building. Resolution is deterministic, so
// strokes render identically after a persistence round-trip.
func (s Stroke) ResolvedPoints() []brush.StrokePoint {
	samples := make([]brush.Sample, len(s.Points))
	for i, p := range s.Points {
		samples[i] = brush.Sample{X: p.X, Y: p.Y, Pressure: p.Pressure, Time: p.Time}
	}
	return brush.ResolveSamples(samples, s.Settings.SimulatePressure)
}

// Outline builds the closed silhouette polygon for the stroke.
func (s Stroke) Outline() []brush.Point {
	return brush.BuildOutline(s.ResolvedPoints(), s.Settings.BrushOptions())
}

// Path builds the smooth closed fill path for the stroke.
func (s Stroke) Path() brush.Path {
	return brush.SerializeOutline(s.Outline())
}

// BoardMeta describes a drawing board.
type BoardMeta struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Version    int    `json:"version"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// BoardDocument is the full persisted state of a board: metadata plus the
// ordered list of finalized strokes.
type BoardDocument struct {
	Board   BoardMeta `json:"board"`
	Strokes []Stroke  `json:"strokes"`
}

// NewEmptyDocument creates an empty document for a new board.
func NewEmptyDocument(boardID, name string) *BoardDocument {
	return &BoardDocument{
		Board: BoardMeta{
			ID:         boardID,
			Name:       name,
			Version:    1,
			Width:      1280,
			Height:     720,
			Background: "#f5f0e6",
		},
		Strokes: []Stroke{},
	}
}
