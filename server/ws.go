package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/segview/numguess/model"
)

const wsWriteTimeout = 5 * time.Second

// handleWS upgrades the connection and runs it in both directions: latched
// display frames stream out at the configured frame rate, and button events
// come back in on the same socket.
func (gs *gameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	session, ok := gs.registry.get(mux.Vars(r)["sessionID"])
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		gs.logger.Warn("websocket upgrade failed", "session_id", session.ID, "error", err)
		return
	}
	defer conn.Close()

	frames := session.subscribe()
	defer session.unsubscribe(frames)
	gs.logger.Info("websocket connected", "session_id", session.ID)

	// Reader: button events from the client.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			var ev model.ButtonEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			if !ev.Button.Valid() {
				continue
			}
			session.apply(ev)
			gs.metrics.buttonEvents.WithLabelValues(string(ev.Button)).Inc()
		}
	}()

	// Writer: frames until the client goes away or the session stops.
	for {
		select {
		case <-readerDone:
			return
		case <-session.done:
			return
		case f := <-frames:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(f); err != nil {
				gs.logger.Debug("websocket write failed", "session_id", session.ID, "error", err)
				return
			}
		}
	}
}
