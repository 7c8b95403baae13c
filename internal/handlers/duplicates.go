package handlers

import (
	"net/http"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"swiftverify/internal/models"
)

// Names this similar under Jaro-Winkler are flagged as likely the same person.
const nameSimilarityThreshold = 0.92

type duplicatePair struct {
	A          models.VerificationRecord `json:"a"`
	B          models.VerificationRecord `json:"b"`
	Reason     string                    `json:"reason"`
	Similarity float64                   `json:"similarity,omitempty"`
}

// Duplicates flags record pairs that share an ID number or carry
// near-identical names, so repeat submissions stand out on review.
// GET /admin/api/duplicates
func (h *Handler) Duplicates(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.ReadAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to read records"})
		return
	}

	metric := metrics.NewJaroWinkler()
	pairs := []duplicatePair{}
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			a, b := records[i], records[j]
			if a.IDNumber == b.IDNumber {
				pairs = append(pairs, duplicatePair{A: a, B: b, Reason: "same_id_number"})
				continue
			}
			sim := strutil.Similarity(strings.ToLower(a.Name), strings.ToLower(b.Name), metric)
			if sim >= nameSimilarityThreshold {
				pairs = append(pairs, duplicatePair{A: a, B: b, Reason: "similar_name", Similarity: sim})
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "total": len(pairs), "duplicates": pairs})
}
