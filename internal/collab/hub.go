package collab

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/inkbrush/inkbrush/backend-go/internal/document"
)

// DocumentLoader fetches the latest persisted document for a board.
type DocumentLoader func(boardID string) (*document.BoardDocument, error)

// DocumentSaver persists the authoritative document for a board.
type DocumentSaver func(boardID string, doc *document.BoardDocument) error

type Room struct {
	boardID  string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	state    *BoardState
}

func NewRoom(boardID string, state *BoardState) *Room {
	return &Room{
		boardID:  boardID,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
		state:    state,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // boardID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	loader DocumentLoader
	saver  DocumentSaver
}

func NewHub(loader DocumentLoader, saver DocumentSaver) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		loader:     loader,
		saver:      saver,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop halts the run loop and saves every dirty board.
func (h *Hub) Stop() {
	close(h.done)

	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.mu.Unlock()

	for _, room := range rooms {
		h.saveRoom(room)
	}
}

// Register hands a client to the run loop. A stopped hub accepts no more
// clients; the call returns instead of blocking.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from its room. After Stop the run loop no
// longer drains the channel, so the call returns instead of leaking the
// read pump goroutine.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		state, err := h.loadBoard(client.BoardID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("load board", "error", err, "board", client.BoardID)
			client.SendError("board unavailable")
			return
		}
		room = NewRoom(client.BoardID, state)
		h.rooms[client.BoardID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Sync the authoritative document to the new client
	syncPayload, err := json.Marshal(BoardSyncPayload{
		Document:  room.state.Document(),
		ServerSeq: room.state.ServerSeq(),
	})
	if err != nil {
		slog.Error("marshal board sync", "error", err)
	} else {
		client.Send(&Message{Type: TypeBoardSync, Payload: syncPayload})
	}

	// Send current presence state to new client
	stateMsg := room.presence.StateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.BoardID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) loadBoard(boardID string) (*BoardState, error) {
	if h.loader == nil {
		return NewBoardState(document.NewEmptyDocument(boardID, "Untitled"))
	}
	doc, err := h.loader(boardID)
	if err != nil {
		return nil, err
	}
	return NewBoardState(doc)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.BoardID)
	}
	h.mu.Unlock()

	if empty {
		h.saveRoom(room)
	}

	// Broadcast leave to remaining clients
	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.BoardID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) saveRoom(room *Room) {
	if h.saver == nil || !room.state.Dirty() {
		return
	}
	if err := h.saver(room.boardID, room.state.Document()); err != nil {
		slog.Error("save board", "error", err, "board", room.boardID)
		return
	}
	room.state.MarkSaved()
	slog.Info("board saved", "board", room.boardID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.BoardID, outMsg, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var payload OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid operation payload", "error", err, "user", sender.UserID)
		return
	}
	op := payload.Operation

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	serverSeq, err := room.state.ApplyOperation(op)
	if err != nil {
		nackPayload, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nackPayload})
		return
	}

	ackPayload, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       serverSeq,
		ServerTimestamp: GetServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ackPayload})

	broadcastPayload, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	broadcastMsg := &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Payload: broadcastPayload,
	}
	h.broadcastToRoom(sender.BoardID, broadcastMsg, sender.ClientID)
}

func (h *Hub) broadcastToRoom(boardID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[boardID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
