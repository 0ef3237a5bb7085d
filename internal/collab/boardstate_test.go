package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

func testStroke(id string, n int) *document.Stroke {
	s := &document.Stroke{
		ID:       id,
		Color:    "#1a1a2e",
		Settings: document.DefaultSettings(),
	}
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, document.Sample{X: float64(i) * 4, Y: 10, Time: float64(i) * 16})
	}
	return s
}

func newTestState(t *testing.T) *BoardState {
	t.Helper()
	state, err := NewBoardState(document.NewEmptyDocument("board_test", "Test"))
	if err != nil {
		t.Fatalf("NewBoardState: %v", err)
	}
	return state
}

func TestApplyStrokeAdd(t *testing.T) {
	state := newTestState(t)

	seq, err := state.ApplyOperation(Operation{ID: "op1", Type: OpStrokeAdd, Stroke: testStroke("stroke_1", 5)})
	if err != nil {
		t.Fatalf("ApplyOperation: %v", err)
	}
	if seq != 1 {
		t.Errorf("server seq = %d, want 1", seq)
	}
	if got := len(state.Document().Strokes); got != 1 {
		t.Errorf("document has %d strokes, want 1", got)
	}
	if !state.Dirty() {
		t.Error("state not dirty after stroke.add")
	}
}

func TestApplyStrokeAddRejectsDegenerate(t *testing.T) {
	state := newTestState(t)

	if _, err := state.ApplyOperation(Operation{ID: "op1", Type: OpStrokeAdd, Stroke: testStroke("stroke_1", 1)}); err == nil {
		t.Error("1 point stroke accepted")
	}
	if _, err := state.ApplyOperation(Operation{ID: "op2", Type: OpStrokeAdd}); err == nil {
		t.Error("stroke.add without stroke accepted")
	}
	if state.ServerSeq() != 0 {
		t.Errorf("server seq advanced to %d on rejected ops", state.ServerSeq())
	}
}

func TestApplyHistoryOperations(t *testing.T) {
	state := newTestState(t)

	mustApply := func(op Operation) {
		t.Helper()
		if _, err := state.ApplyOperation(op); err != nil {
			t.Fatalf("ApplyOperation(%s): %v", op.Type, err)
		}
	}

	mustApply(Operation{ID: "op1", Type: OpStrokeAdd, Stroke: testStroke("stroke_1", 4)})
	mustApply(Operation{ID: "op2", Type: OpStrokeAdd, Stroke: testStroke("stroke_2", 4)})
	mustApply(Operation{ID: "op3", Type: OpBoardUndo})

	if got := len(state.Document().Strokes); got != 1 {
		t.Errorf("strokes after undo = %d, want 1", got)
	}

	mustApply(Operation{ID: "op4", Type: OpBoardRedo})
	if got := len(state.Document().Strokes); got != 2 {
		t.Errorf("strokes after redo = %d, want 2", got)
	}

	mustApply(Operation{ID: "op5", Type: OpBoardClear})
	if got := len(state.Document().Strokes); got != 0 {
		t.Errorf("strokes after clear = %d, want 0", got)
	}
}

func TestApplyUndoOnEmptyBoard(t *testing.T) {
	state := newTestState(t)
	if _, err := state.ApplyOperation(Operation{ID: "op1", Type: OpBoardUndo}); err == nil {
		t.Error("undo on pristine board accepted")
	}
}

func TestApplyUnknownOperation(t *testing.T) {
	state := newTestState(t)
	if _, err := state.ApplyOperation(Operation{ID: "op1", Type: "board.teleport"}); err == nil {
		t.Error("unknown operation accepted")
	}
}

// Document hands out snapshots: operations applied after the call must not
// show up in a previously returned document.
func TestDocumentIsSnapshot(t *testing.T) {
	state := newTestState(t)

	if _, err := state.ApplyOperation(Operation{ID: "op1", Type: OpStrokeAdd, Stroke: testStroke("stroke_1", 4)}); err != nil {
		t.Fatalf("ApplyOperation: %v", err)
	}

	doc := state.Document()

	if _, err := state.ApplyOperation(Operation{ID: "op2", Type: OpStrokeAdd, Stroke: testStroke("stroke_2", 4)}); err != nil {
		t.Fatalf("ApplyOperation: %v", err)
	}

	if got := len(doc.Strokes); got != 1 {
		t.Errorf("snapshot has %d strokes, want 1", got)
	}
	if got := len(state.Document().Strokes); got != 2 {
		t.Errorf("live document has %d strokes, want 2", got)
	}
}

// A client joining a room marshals the document on the hub goroutine while
// other clients keep submitting operations on theirs.
func TestDocumentMarshalDuringOperations(t *testing.T) {
	state := newTestState(t)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			op := Operation{
				ID:     fmt.Sprintf("op%d", i),
				Type:   OpStrokeAdd,
				Stroke: testStroke(fmt.Sprintf("stroke_%d", i), 4),
			}
			if _, err := state.ApplyOperation(op); err != nil {
				t.Errorf("ApplyOperation: %v", err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := json.Marshal(state.Document()); err != nil {
				t.Errorf("marshal snapshot: %v", err)
				return
			}
		}
	}()

	wg.Wait()

	if got := len(state.Document().Strokes); got != 200 {
		t.Errorf("document has %d strokes, want 200", got)
	}
}

func TestMarkSaved(t *testing.T) {
	state := newTestState(t)

	if _, err := state.ApplyOperation(Operation{ID: "op1", Type: OpStrokeAdd, Stroke: testStroke("stroke_1", 4)}); err != nil {
		t.Fatalf("ApplyOperation: %v", err)
	}

	state.MarkSaved()
	if state.Dirty() {
		t.Error("state dirty after MarkSaved")
	}
	if state.ServerSeq() != 1 {
		t.Errorf("MarkSaved reset server seq to %d", state.ServerSeq())
	}
}
