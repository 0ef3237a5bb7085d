package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceManager tracks who is on a board: their brush cursor position and
// whether they are mid-stroke. One manager per room.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

// Update replaces a user's presence with the latest report.
func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = p
}

// Remove drops a user's presence when they leave the board.
func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

// All returns a copy of the presence map.
func (pm *PresenceManager) All() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for userID, p := range pm.presences {
		result[userID] = p
	}
	return result
}

// StateMessage builds the presence.state message sent to a client joining
// the board, so their cursor overlay starts populated.
func (pm *PresenceManager) StateMessage() *Message {
	payload, err := json.Marshal(PresenceStatePayload{Presences: pm.All()})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
