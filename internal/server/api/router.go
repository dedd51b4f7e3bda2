package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Generate      *GenerateHandler
	Data          *DataHandler
	Verify        *VerifyHandler
	PlatformUsers *PlatformUserHandler
	APIUsers      *APIUserHandler
}

// NewRouter assembles the full HTTP surface.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"apiforge"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		r.With(SessionAuthMiddleware).Post("/generate-signup-url", h.Generate.GenerateAPI)
		r.Post("/signup", h.APIUsers.Signup)
		r.Post("/login", h.APIUsers.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/{uniqueId}", h.Data.HandleGet)
		r.Post("/{uniqueId}", h.Data.HandlePost)
		r.Put("/{uniqueId}/{recordId}", h.Data.HandlePut)
		r.Delete("/{uniqueId}/{recordId}", h.Data.HandleDelete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", h.PlatformUsers.Signup)
		r.Post("/login", h.PlatformUsers.Login)
		r.Post("/send-otp", h.PlatformUsers.SendOtp)
		r.Post("/verify-otp", h.PlatformUsers.VerifyOtp)
	})

	r.Get("/verify/{uniqueId}", h.Verify.VerifyToken)

	return r
}
