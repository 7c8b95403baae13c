package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

// RecordQRCode renders a QR code pointing at the record's review URL, handy
// for pulling a submission up on a second device.
// GET /admin/api/records/{id}/qrcode
func (h *Handler) RecordQRCode(w http.ResponseWriter, r *http.Request) {
	recID := chi.URLParam(r, "id")
	if recID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	data := h.BaseURL + "/dashboard?record=" + recID

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
