package handlers

import (
	"encoding/json"
	"net/http"

	"swiftverify/internal/imagestore"
	"swiftverify/internal/store"
	"swiftverify/internal/workflow"
)

// Handler bundles the dependencies the HTTP surface needs.
type Handler struct {
	Workflow *workflow.Workflow
	Records  store.RecordStore
	Images   imagestore.Store

	JWTSecret         []byte
	AdminPassword     string
	AdminPasswordHash string

	BaseURL        string
	MaxUploadBytes int64
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Health confirms the service is up.
// GET /
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Identity Verification Backend Running\n"))
}
