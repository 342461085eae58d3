package diag

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func newRouter(reg *Registry, logger *log.Logger) http.Handler {
	if reg == nil {
		reg = NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// The default chi logger writes to stdout, which the terminal UI owns.
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", healthHandler)
	r.Get("/api/overlays", listOverlaysHandler(reg))
	r.Get("/api/overlays/{id}", getOverlayHandler(reg))
	r.Method(http.MethodGet, "/metrics", reg.MetricsHandler())

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func listOverlaysHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		overlays := reg.Snapshot()
		visible := 0
		for _, o := range overlays {
			if o.Mounted {
				visible++
			}
		}
		response := struct {
			Data    []OverlayStatus `json:"data"`
			Mounted int             `json:"mounted"`
		}{
			Data:    overlays,
			Mounted: visible,
		}
		writeJSON(w, http.StatusOK, response)
	}
}

func getOverlayHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "overlay ID is required")
			return
		}
		status, ok := reg.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "overlay "+id+" not found")
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

// securityHeaders sets the response headers every endpoint shares.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
