package collab

import (
	"testing"
	"time"
)

// Clients disconnecting during shutdown must not hang on the hub's channels
// once the run loop has exited.
func TestStoppedHubDoesNotBlockClients(t *testing.T) {
	hub := NewHub(nil, nil)
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Register(&Client{BoardID: "board_a"})
		hub.Unregister(&Client{BoardID: "board_a"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after Stop")
	}
}
