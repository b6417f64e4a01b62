package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	db        Pinger
	startedAt time.Time
	now       func() time.Time
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
}

func NewHealthHandler(db Pinger, startedAt time.Time) HealthHandler {
	return &healthHandlerImpl{db: db, startedAt: startedAt, now: time.Now}
}

// Health implements HealthHandler.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	now := h.now()
	resp := healthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(h.startedAt).Truncate(time.Second).String(),
		Database:  "connected",
	}

	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "disconnected"
		response.Unavailable(w, "Database is not reachable", resp)
		return
	}

	response.Success(w, resp)
}
