package engine

import (
	"encoding/json"
	"testing"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

func drawStroke(e *Engine, y float64, n int) *document.Stroke {
	e.PointerDown(0, y, 0, false, 0)
	for i := 1; i < n; i++ {
		e.PointerMove(float64(i)*5, y, 0, false, float64(i)*16)
	}
	return e.PointerUp()
}

func TestPointerLifecycle(t *testing.T) {
	e := NewEngine()

	stroke := drawStroke(e, 100, 8)
	if stroke == nil {
		t.Fatal("PointerUp() returned nil for an 8 point stroke")
	}
	if len(stroke.Points) != 8 {
		t.Errorf("stroke has %d points, want 8", len(stroke.Points))
	}
	if e.StrokeCount() != 1 {
		t.Errorf("StrokeCount() = %d, want 1", e.StrokeCount())
	}
	if e.IsDrawing() {
		t.Error("IsDrawing() = true after pointer-up")
	}
}

func TestShortStrokesDiscarded(t *testing.T) {
	e := NewEngine()

	// Down immediately followed by up: a single point, dropped silently.
	e.PointerDown(10, 10, 0, false, 0)
	if stroke := e.PointerUp(); stroke != nil {
		t.Errorf("1 point stroke committed: %+v", stroke)
	}
	if e.StrokeCount() != 0 {
		t.Errorf("StrokeCount() = %d, want 0", e.StrokeCount())
	}
	if e.CanUndo() {
		t.Error("discarded stroke pushed undo history")
	}
}

func TestPointerMoveDedup(t *testing.T) {
	e := NewEngine()

	e.PointerDown(0, 0, 0, false, 0)
	e.PointerMove(0.5, 0, 0, false, 8)   // within 1 unit, dropped
	e.PointerMove(0.9, 0.3, 0, false, 9) // still within 1 unit
	e.PointerMove(5, 0, 0, false, 16)
	stroke := e.PointerUp()

	if stroke == nil {
		t.Fatal("stroke discarded")
	}
	if len(stroke.Points) != 2 {
		t.Errorf("stroke has %d points, want 2 (dedup failed)", len(stroke.Points))
	}
}

func TestPointerMoveWithoutDown(t *testing.T) {
	e := NewEngine()
	e.PointerMove(10, 10, 0, false, 0)
	if e.IsDrawing() {
		t.Error("PointerMove started a stroke")
	}
	if e.PointerUp() != nil {
		t.Error("PointerUp committed a stroke that never started")
	}
}

func TestUndoRedo(t *testing.T) {
	e := NewEngine()
	drawStroke(e, 10, 5)
	drawStroke(e, 50, 5)

	if e.StrokeCount() != 2 {
		t.Fatalf("StrokeCount() = %d, want 2", e.StrokeCount())
	}

	if !e.Undo() || e.StrokeCount() != 1 {
		t.Fatalf("after first undo StrokeCount() = %d, want 1", e.StrokeCount())
	}
	if !e.Undo() || e.StrokeCount() != 0 {
		t.Fatalf("after second undo StrokeCount() = %d, want 0", e.StrokeCount())
	}
	if e.Undo() {
		t.Error("Undo() succeeded on empty history")
	}

	if !e.Redo() || e.StrokeCount() != 1 {
		t.Fatalf("after redo StrokeCount() = %d, want 1", e.StrokeCount())
	}

	// A new stroke invalidates the redo stack.
	drawStroke(e, 90, 5)
	if e.CanRedo() {
		t.Error("CanRedo() = true after drawing a new stroke")
	}
}

func TestClearIsUndoable(t *testing.T) {
	e := NewEngine()
	drawStroke(e, 10, 5)
	drawStroke(e, 50, 5)

	e.Clear()
	if e.StrokeCount() != 0 {
		t.Fatalf("StrokeCount() = %d after Clear, want 0", e.StrokeCount())
	}
	if !e.Undo() || e.StrokeCount() != 2 {
		t.Errorf("undo of Clear restored %d strokes, want 2", e.StrokeCount())
	}
}

func TestEraserStroke(t *testing.T) {
	e := NewEngine()
	e.SetEraser(true)
	stroke := drawStroke(e, 20, 6)

	if stroke == nil {
		t.Fatal("eraser stroke discarded")
	}
	if !stroke.IsEraser() {
		t.Errorf("stroke color = %q, want the eraser sentinel", stroke.Color)
	}

	var commands []DrawCommand
	if err := json.Unmarshal([]byte(e.Render()), &commands); err != nil {
		t.Fatalf("Render() produced invalid JSON: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("Render() produced %d commands, want 1", len(commands))
	}
	if commands[0].Composite != CompositeErase {
		t.Errorf("composite = %q, want %q", commands[0].Composite, CompositeErase)
	}

	// Picking a color leaves eraser mode.
	e.SetColor("#445566")
	stroke = drawStroke(e, 60, 6)
	if stroke.IsEraser() {
		t.Error("stroke after SetColor still erases")
	}
}

func TestRenderCommands(t *testing.T) {
	e := NewEngine()

	if got := e.Render(); got != "[]" {
		t.Errorf("Render() of empty board = %q, want []", got)
	}

	drawStroke(e, 30, 10)

	var commands []DrawCommand
	if err := json.Unmarshal([]byte(e.Render()), &commands); err != nil {
		t.Fatalf("Render() produced invalid JSON: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("Render() produced %d commands, want 1", len(commands))
	}
	cmd := commands[0]
	if cmd.Op != "fill" {
		t.Errorf("op = %q, want fill", cmd.Op)
	}
	if cmd.Path == "" {
		t.Error("command has empty path data")
	}
	if cmd.Composite != CompositePaint {
		t.Errorf("composite = %q, want %q", cmd.Composite, CompositePaint)
	}
	if cmd.StrokeID == "" {
		t.Error("committed stroke command has no stroke id")
	}
}

func TestLiveStrokeRendered(t *testing.T) {
	e := NewEngine()
	e.PointerDown(0, 0, 0, false, 0)
	e.PointerMove(10, 0, 0, false, 16)
	e.PointerMove(20, 0, 0, false, 32)

	var commands []DrawCommand
	if err := json.Unmarshal([]byte(e.Render()), &commands); err != nil {
		t.Fatalf("Render() produced invalid JSON: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("Render() produced %d commands mid-stroke, want 1", len(commands))
	}
	if commands[0].StrokeID != "" {
		t.Error("live stroke command carries a stroke id")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	e := NewEngine()
	drawStroke(e, 10, 5)
	drawStroke(e, 50, 7)

	data := e.GetDocument()

	e2 := NewEngine()
	if err := e2.LoadDocument(data); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if e2.StrokeCount() != 2 {
		t.Errorf("StrokeCount() after round trip = %d, want 2", e2.StrokeCount())
	}
	if e2.Render() != e.Render() {
		t.Error("render output differs after document round trip")
	}
}

func TestLoadDocumentInvalid(t *testing.T) {
	e := NewEngine()
	if err := e.LoadDocument("{not json"); err == nil {
		t.Error("LoadDocument accepted invalid JSON")
	}
}
