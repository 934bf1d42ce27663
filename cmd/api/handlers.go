package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"ticketsmith/internal/figma"
	"ticketsmith/internal/orchestrator"
	"ticketsmith/internal/types"
)

// apiServer wires HTTP handlers to the orchestrator.
type apiServer struct {
	orch  *orchestrator.Orchestrator
	figma *figma.Client
}

func newAPIServer(orch *orchestrator.Orchestrator, figmaClient *figma.Client) *apiServer {
	return &apiServer{orch: orch, figma: figmaClient}
}

func buildMux(s *apiServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/ws/generate", s.handleGenerateWS)
	return mux
}

// generateRequest is the wire shape. A selectionRef, when present and
// resolvable, supplements the request with fetched design data.
type generateRequest struct {
	types.GenerationRequest
	SelectionRef string `json:"selectionRef,omitempty"`
}

func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in generateRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req := s.resolveRequest(r, &in)

	result, err := s.orch.GenerateTicket(r.Context(), req)
	if err != nil {
		if types.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// The orchestrator contract says this cannot happen for valid input.
		log.Printf("api: generate: unexpected error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.orch.Health())
}

// resolveRequest fills frame data and screenshot from the design source when
// the plugin passed only a selection reference. Fetch failures degrade to
// whatever the request already carries.
func (s *apiServer) resolveRequest(r *http.Request, in *generateRequest) *types.GenerationRequest {
	req := in.GenerationRequest
	ref := strings.TrimSpace(in.SelectionRef)
	if ref == "" || req.HasFrameData() {
		return &req
	}
	data, err := s.figma.GetDesignData(r.Context(), ref)
	if err != nil {
		log.Printf("api: design data fetch failed for %q: %v", ref, err)
		return &req
	}
	if data.Document != nil {
		req.FrameData = []*types.FrameNode{data.Document}
	}
	if req.Screenshot == nil && data.Screenshot != nil {
		req.Screenshot = data.Screenshot
	}
	return &req
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}
