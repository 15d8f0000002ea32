package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qalabs/reporting-demo-api/internal/middleware"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

type auditEntry struct {
	ID         string    `json:"id"`
	Time       time.Time `json:"time"`
	TraceID    string    `json:"trace_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
}

type auditSink interface {
	Write(entry auditEntry) error
}

// loggerSink mirrors every audit entry into the structured log so the trail
// survives ring-buffer eviction.
type loggerSink struct {
	log *logger.Logger
}

func newLoggerSink(log *logger.Logger) loggerSink {
	if log == nil {
		log = logger.NewDefault("audit")
	}
	return loggerSink{log: log}
}

func (s loggerSink) Write(entry auditEntry) error {
	s.log.WithField("trace_id", entry.TraceID).
		WithField("method", entry.Method).
		WithField("path", entry.Path).
		WithField("status", entry.Status).
		Debug("request audited")
	return nil
}

// auditLog keeps a bounded ring of recent request entries.
type auditLog struct {
	mu      sync.Mutex
	entries []auditEntry
	max     int
	sink    auditSink
}

func newAuditLog(max int, sink auditSink) *auditLog {
	if max <= 0 {
		max = 200
	}
	return &auditLog{max: max, sink: sink}
}

func (l *auditLog) add(entry auditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
	if l.sink != nil {
		// Best-effort persistence; ignore errors to avoid impacting request flow.
		_ = l.sink.Write(entry)
	}
}

func (l *auditLog) list() []auditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]auditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// auditHandler records every request except the metrics scrape.
func (h *handler) auditHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &auditRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.audit.add(auditEntry{
			ID:         uuid.NewString(),
			Time:       time.Now().UTC(),
			TraceID:    middleware.TraceIDFromContext(r.Context()),
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rec.status,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
		})
	})
}

type auditRecorder struct {
	http.ResponseWriter
	status int
}

func (r *auditRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
