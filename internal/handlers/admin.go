package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"swiftverify/internal/models"
)

const adminSessionTTL = 12 * time.Hour

// LoginPage renders the admin login form.
// GET /admin
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<h2>Admin Login</h2>
<form action="/admin/login" method="POST">
  <input type="password" name="password" placeholder="Enter Admin Password" required />
  <button type="submit">Login</button>
</form>
`))
}

// Login checks the shared admin secret and issues a short-lived session
// token, both as JSON and as a cookie for the HTML dashboard.
// POST /admin/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")
	if password == "" && strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			password = body.Password
		}
	}

	if !h.checkPassword(password) {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": "Access Denied: wrong password",
		})
		return
	}

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminSessionTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "failed to sign session token",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "admin_token",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(adminSessionTTL),
	})

	// Browser form logins land on the dashboard; API clients get the token.
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": signed})
}

func (h *Handler) checkPassword(password string) bool {
	if password == "" {
		return false
	}
	if h.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.AdminPassword), []byte(password)) == 1
}

// ListRecords returns all records, newest first. Newest-first is a
// presentation choice; the store itself keeps insertion order.
// GET /admin/api/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.ReadAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to read records"})
		return
	}
	sortNewestFirst(records)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "total": len(records), "records": records})
}

// DeleteRecord removes one record and then deletes its three remote images.
// Image deletion is best effort: the record removal is what the admin asked
// for, stray remote images only get logged.
// POST /admin/api/records/{id}/delete
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "missing id"})
		return
	}

	removed, err := h.Records.RemoveByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "failed to remove record"})
		return
	}
	if removed == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "record not found"})
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 30*time.Second)
	defer cancel()
	var g errgroup.Group
	for _, ref := range []models.ImageRef{removed.Selfie, removed.FrontID, removed.BackID} {
		g.Go(func() error {
			if err := h.Images.Delete(cleanupCtx, ref.PublicID); err != nil {
				log.Printf("admin: delete image %s for record %s: %v", ref.PublicID, id, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "removed": removed.ID})
}

func sortNewestFirst(records []models.VerificationRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
