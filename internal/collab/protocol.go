package collab

import (
	"encoding/json"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Drawing     bool       `json:"drawing,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Board sync
	TypeBoardSync = "board.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Operation types mutating the authoritative board.
const (
	OpStrokeAdd  = "stroke.add"
	OpBoardClear = "board.clear"
	OpBoardUndo  = "board.undo"
	OpBoardRedo  = "board.redo"
)

// Operation represents one board mutation. Stroke is set for stroke.add;
// the history and clear operations carry no payload.
type Operation struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Timestamp int64            `json:"timestamp"`
	ClientSeq int64            `json:"clientSeq"`
	Stroke    *document.Stroke `json:"stroke,omitempty"`
}

// OperationSubmitPayload is the payload for op.submit messages.
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages.
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages.
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages.
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// BoardSyncPayload carries the full authoritative document to a client that
// just joined.
type BoardSyncPayload struct {
	Document  *document.BoardDocument `json:"document"`
	ServerSeq int64                   `json:"serverSeq"`
}
