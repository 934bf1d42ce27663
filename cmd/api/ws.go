package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ticketsmith/internal/orchestrator"
	"ticketsmith/internal/types"
)

const (
	generateWSWriteWait = 10 * time.Second
	generateWSReadWait  = 60 * time.Second
)

var generateWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type generateWSOutbound struct {
	Type     string                     `json:"type"` // "progress", "result", "error"
	Progress *orchestrator.ProgressEvent `json:"progress,omitempty"`
	Result   *types.GenerationResult    `json:"result,omitempty"`
	Message  string                     `json:"message,omitempty"`
}

// handleGenerateWS accepts one generate request over a websocket and streams
// cascade progress frames, ending with the final result.
func (s *apiServer) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := generateWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(generateWSReadWait))
	var in generateRequest
	if err := conn.ReadJSON(&in); err != nil {
		writeWSFrame(conn, generateWSOutbound{Type: "error", Message: "invalid request frame"})
		return
	}
	req := s.resolveRequest(r, &in)

	// Progress events are forwarded on the caller's goroutine; no fan-out.
	ctx := orchestrator.WithProgress(r.Context(), func(ev orchestrator.ProgressEvent) {
		evCopy := ev
		writeWSFrame(conn, generateWSOutbound{Type: "progress", Progress: &evCopy})
	})

	result, err := s.orch.GenerateTicket(ctx, req)
	if err != nil {
		writeWSFrame(conn, generateWSOutbound{Type: "error", Message: err.Error()})
		return
	}
	writeWSFrame(conn, generateWSOutbound{Type: "result", Result: &result})
}

func writeWSFrame(conn *websocket.Conn, frame generateWSOutbound) {
	_ = conn.SetWriteDeadline(time.Now().Add(generateWSWriteWait))
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("ws: write failed: %v", err)
	}
}
