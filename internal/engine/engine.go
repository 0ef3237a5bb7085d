package engine

import (
	"encoding/json"

	"github.com/inkbrush/inkbrush/backend-go/internal/brush"
	"github.com/inkbrush/inkbrush/backend-go/internal/document"
	"github.com/inkbrush/inkbrush/backend-go/internal/typeid"
)

// minSampleDistance is the dedup radius for pointer-move samples: moves
// closer than this to the last accepted sample are dropped before they
// reach the brush core.
const minSampleDistance = 1.0

// Engine is the drawing engine that owns the board document and the
// in-progress stroke. It processes pointer commands from the frontend and
// returns draw commands. All methods are intended to run on a single
// goroutine (the UI thread in wasm builds, one client loop on the server).
type Engine struct {
	// Board state
	doc *document.BoardDocument

	// In-progress stroke
	drawing  bool
	pending  []document.Sample   // raw samples, persisted on commit
	resolved []brush.StrokePoint // pressure-resolved mirror of pending

	// Pending brush settings for the next stroke
	settings document.StrokeSettings
	eraser   bool

	// Snapshot history for undo/redo
	undo [][]document.Stroke
	redo [][]document.Stroke
}

// NewEngine creates an engine with an empty board and default settings.
func NewEngine() *Engine {
	return &Engine{
		doc:      document.NewEmptyDocument(typeid.NewBoardID(), "Untitled"),
		settings: document.DefaultSettings(),
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument replaces the board state with a document parsed from JSON.
// Any in-progress stroke and history are discarded.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.BoardDocument
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	e.doc = &doc
	e.drawing = false
	e.pending = nil
	e.resolved = nil
	e.undo = nil
	e.redo = nil

	return nil
}

// LoadSampleDocument loads the built-in demo board.
func (e *Engine) LoadSampleDocument(boardID string) {
	e.doc = document.NewSampleDocument(boardID)
	e.drawing = false
	e.pending = nil
	e.resolved = nil
	e.undo = nil
	e.redo = nil
}

// PointerDown begins a new stroke at (x, y). The first point is forced to
// tip pressure so the entry is sharp. A pointer-down while a stroke is in
// progress finalizes the old stroke first (the pointer-up was lost).
func (e *Engine) PointerDown(x, y, pressure float64, hasPressure bool, t float64) {
	if e.drawing {
		e.PointerUp()
	}

	e.drawing = true
	e.pending = []document.Sample{makeSample(x, y, pressure, hasPressure, t)}
	e.resolved = []brush.StrokePoint{{X: x, Y: y, Pressure: brush.TipPressure, Time: t}}
}

// PointerMove appends a sample to the in-progress stroke. Samples closer
// than one distance unit to the last accepted sample are dropped; this
// dedup is the primary guard against zero-distance input, the estimator's
// dt clamp is the second line of defense.
func (e *Engine) PointerMove(x, y, pressure float64, hasPressure bool, t float64) {
	if !e.drawing {
		return
	}

	last := e.resolved[len(e.resolved)-1]
	if brush.Pt(x, y).Distance(brush.Pt(last.X, last.Y)) < minSampleDistance {
		return
	}

	resolved := brush.NeutralPressure
	switch {
	case e.settings.SimulatePressure:
		resolved = brush.ResolvePressure(pressure, hasPressure, e.resolved, x, y, t)
	case hasPressure:
		resolved = pressure
	}

	e.pending = append(e.pending, makeSample(x, y, pressure, hasPressure, t))
	e.resolved = append(e.resolved, brush.StrokePoint{X: x, Y: y, Pressure: resolved, Time: t})
}

// PointerUp finalizes the in-progress stroke. Strokes with fewer than two
// points are silently discarded, a policy no-op rather than an error.
// Returns the committed stroke, or nil if the stroke was discarded.
func (e *Engine) PointerUp() *document.Stroke {
	if !e.drawing {
		return nil
	}
	e.drawing = false

	pending := e.pending
	e.pending = nil
	e.resolved = nil

	if len(pending) < 2 {
		return nil
	}

	settings := e.settings
	color := settings.Color
	if e.eraser {
		color = document.EraserColor
	}
	settings.Color = color

	stroke := document.Stroke{
		ID:       typeid.NewStrokeID(),
		Color:    color,
		Settings: settings,
		Points:   pending,
	}

	e.pushUndo()
	e.doc.Strokes = append(e.doc.Strokes, stroke)
	e.redo = nil

	return &stroke
}

// AddStroke appends an already-finalized stroke (e.g. received from a
// collaboration peer). Strokes below two points are discarded.
func (e *Engine) AddStroke(stroke document.Stroke) bool {
	if len(stroke.Points) < 2 {
		return false
	}
	e.pushUndo()
	e.doc.Strokes = append(e.doc.Strokes, stroke)
	e.redo = nil
	return true
}

// Undo reverts the last committed change to the stroke list.
func (e *Engine) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	e.redo = append(e.redo, e.doc.Strokes)
	e.doc.Strokes = e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	return true
}

// Redo reapplies the last undone change.
func (e *Engine) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	e.undo = append(e.undo, e.doc.Strokes)
	e.doc.Strokes = e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	return true
}

// Clear removes all strokes from the board. Undoable.
func (e *Engine) Clear() {
	if len(e.doc.Strokes) == 0 {
		return
	}
	e.pushUndo()
	e.doc.Strokes = []document.Stroke{}
	e.redo = nil
}

// SetColor sets the ink color for subsequent strokes and leaves eraser mode.
func (e *Engine) SetColor(color string) {
	e.settings.Color = color
	e.eraser = false
}

// SetSize sets the brush size for subsequent strokes.
func (e *Engine) SetSize(size float64) {
	if size > 0 {
		e.settings.Size = size
	}
}

// SetThinning sets the pressure-to-width coupling for subsequent strokes.
func (e *Engine) SetThinning(thinning float64) {
	if thinning >= 0 && thinning <= 1 {
		e.settings.Thinning = thinning
	}
}

// SetEraser toggles eraser mode for subsequent strokes.
func (e *Engine) SetEraser(on bool) {
	e.eraser = on
}

// --- Queries (frontend ← backend) ---

// Render compiles the board plus any in-progress stroke into draw commands
// and returns them as JSON.
func (e *Engine) Render() string {
	commands := CompileDrawCommands(e.doc, e.liveStroke())
	result, _ := DrawCommandsToJSON(commands)
	return result
}

// GetDocument returns the board document as JSON. The in-progress stroke is
// not part of the document until pointer-up.
func (e *Engine) GetDocument() string {
	data, err := json.Marshal(e.doc)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Document returns the board document for in-process callers.
func (e *Engine) Document() *document.BoardDocument {
	return e.doc
}

// StrokeCount returns the number of finalized strokes.
func (e *Engine) StrokeCount() int {
	return len(e.doc.Strokes)
}

// IsDrawing reports whether a stroke is in progress.
func (e *Engine) IsDrawing() bool {
	return e.drawing
}

// CanUndo reports whether Undo would change the board.
func (e *Engine) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether Redo would change the board.
func (e *Engine) CanRedo() bool { return len(e.redo) > 0 }

// liveStroke assembles a transient stroke from the in-progress points for
// rendering. Returns nil when nothing is being drawn.
func (e *Engine) liveStroke() *liveStroke {
	if !e.drawing || len(e.resolved) < 2 {
		return nil
	}
	color := e.settings.Color
	if e.eraser {
		color = document.EraserColor
	}
	return &liveStroke{
		points:  e.resolved,
		options: e.settings.BrushOptions(),
		color:   color,
	}
}

// pushUndo snapshots the current stroke list. The slice is copied so later
// appends to doc.Strokes cannot reach into a stored snapshot.
func (e *Engine) pushUndo() {
	snapshot := make([]document.Stroke, len(e.doc.Strokes))
	copy(snapshot, e.doc.Strokes)
	e.undo = append(e.undo, snapshot)
}

func makeSample(x, y, pressure float64, hasPressure bool, t float64) document.Sample {
	s := document.Sample{X: x, Y: y, Time: t}
	if hasPressure {
		p := pressure
		s.Pressure = &p
	}
	return s
}
