// Package httpapi translates HTTP requests into service calls and maps
// application errors onto status codes.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/v3/process"

	app "github.com/qalabs/reporting-demo-api/internal/app"
	"github.com/qalabs/reporting-demo-api/internal/app/metrics"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

// Version reported by the root endpoint.
const Version = "1.0.0"

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app     *app.Application
	audit   *auditLog
	started time.Time
}

// NewHandler returns a router exposing the REST API.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{
		app:     application,
		audit:   newAuditLog(0, newLoggerSink(nil)),
		started: time.Now(),
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	api.HandleFunc("/users/search/{query}", h.searchUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.getUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.updateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", h.deleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/calculator/{operation}", h.calculate).Methods(http.MethodPost)

	api.HandleFunc("/data/process", h.dataProcess).Methods(http.MethodPost)
	api.HandleFunc("/data/filter", h.dataFilter).Methods(http.MethodPost)
	api.HandleFunc("/data/transform", h.dataTransform).Methods(http.MethodPost)
	api.HandleFunc("/data/sort", h.dataSort).Methods(http.MethodPost)
	api.HandleFunc("/data/group", h.dataGroup).Methods(http.MethodPost)
	api.HandleFunc("/data/validate", h.dataValidate).Methods(http.MethodPost)

	api.HandleFunc("/audit", h.listAudit).Methods(http.MethodGet)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/", h.root).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	return h.auditHandler(r)
}

func (h *handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Reporting Demo API",
		"version": Version,
		"endpoints": map[string]string{
			"health":     "/health",
			"metrics":    "/metrics",
			"users":      "/api/users",
			"calculator": "/api/calculator",
			"data":       "/api/data",
			"audit":      "/api/audit",
		},
	})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Seconds(),
	}

	// Process stats are best-effort; the endpoint must stay healthy even if
	// they cannot be read.
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			payload["memory_bytes"] = mem.RSS
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			payload["cpu_percent"] = cpu
		}
	}

	writeJSON(w, http.StatusOK, payload)
}

func (h *handler) notFound(w http.ResponseWriter, _ *http.Request) {
	writeErrorMessage(w, http.StatusNotFound, "endpoint not found")
}

func (h *handler) listAudit(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.audit.list())
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorMessage(w, apperr.HTTPStatus(err), err.Error())
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
