package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
	"github.com/inkbrush/inkbrush/backend-go/internal/engine"
)

// BoardState holds the authoritative board state for a room. It wraps a
// drawing engine so collaboration operations reuse the same stroke and
// history semantics as local drawing.
type BoardState struct {
	mu        sync.RWMutex
	eng       *engine.Engine
	serverSeq int64
	opLog     []Operation // operation history since the last save
	dirty     bool
}

// NewBoardState creates board state from an initial document.
func NewBoardState(doc *document.BoardDocument) (*BoardState, error) {
	eng := engine.NewEngine()
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := eng.LoadDocument(string(data)); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	return &BoardState{eng: eng}, nil
}

// Document returns a snapshot of the current document. The stroke list is
// copied under the lock, so the caller can marshal or persist the snapshot
// while operations keep mutating the live board. Stroke values are immutable
// once committed and are shared, not copied.
func (bs *BoardState) Document() *document.BoardDocument {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	live := bs.eng.Document()
	snap := *live
	snap.Strokes = make([]document.Stroke, len(live.Strokes))
	copy(snap.Strokes, live.Strokes)
	return &snap
}

// ServerSeq returns the current server sequence number.
func (bs *BoardState) ServerSeq() int64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.serverSeq
}

// Dirty reports whether the board changed since the last MarkSaved.
func (bs *BoardState) Dirty() bool {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.dirty
}

// MarkSaved clears the dirty flag and the pending op log after a persist.
func (bs *BoardState) MarkSaved() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.dirty = false
	bs.opLog = bs.opLog[:0]
}

// ApplyOperation applies an operation to the board and returns the new
// server sequence number.
func (bs *BoardState) ApplyOperation(op Operation) (int64, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if err := bs.applyLocked(op); err != nil {
		return 0, err
	}

	bs.serverSeq++
	bs.opLog = append(bs.opLog, op)
	bs.dirty = true

	return bs.serverSeq, nil
}

func (bs *BoardState) applyLocked(op Operation) error {
	switch op.Type {
	case OpStrokeAdd:
		if op.Stroke == nil {
			return fmt.Errorf("stroke.add without stroke")
		}
		if !bs.eng.AddStroke(*op.Stroke) {
			return fmt.Errorf("stroke %s has fewer than 2 points", op.Stroke.ID)
		}
		return nil
	case OpBoardClear:
		bs.eng.Clear()
		return nil
	case OpBoardUndo:
		if !bs.eng.Undo() {
			return fmt.Errorf("nothing to undo")
		}
		return nil
	case OpBoardRedo:
		if !bs.eng.Redo() {
			return fmt.Errorf("nothing to redo")
		}
		return nil
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// GetServerTimestamp returns the current server timestamp in milliseconds.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
