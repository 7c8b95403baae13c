package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"swiftverify/internal/handlers"
	"swiftverify/internal/middleware"
)

// New assembles the public upload surface and the token-gated admin surface.
func New(h *handlers.Handler, allowedOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(allowedOrigin))
	r.Use(middleware.Logging)

	r.Get("/", h.Health)
	r.Post("/upload", h.Upload)

	r.Get("/admin", h.LoginPage)
	r.Post("/admin/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(h.JWTSecret))
		r.Get("/dashboard", h.Dashboard)
		r.Get("/admin/api/records", h.ListRecords)
		r.Post("/admin/api/records/{id}/delete", h.DeleteRecord)
		r.Get("/admin/api/records/{id}/qrcode", h.RecordQRCode)
		r.Get("/admin/api/duplicates", h.Duplicates)
	})

	return r
}
