package api

import (
	"net/http"
	"strconv"
	"time"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime"`
	Database  string    `json:"database"`
}

func (s *APIServer) getHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Database:  "connected",
	}

	status := http.StatusOK

	if err := s.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, resp)
}

// getLiveness answers platform probes without touching the database.
func (s *APIServer) getLiveness(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *APIServer) getBanner(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Stark Products API - Bathroom Accessories Management System",
	})
}

// pagination reads offset/limit query parameters with sane bounds. skip is
// accepted as an alias for offset.
func pagination(r *http.Request) (skip, limit int64) {
	limit = defaultPageSize

	offset := r.URL.Query().Get("offset")
	if offset == "" {
		offset = r.URL.Query().Get("skip")
	}

	if offset != "" {
		if n, err := strconv.ParseInt(offset, 10, 64); err == nil && n >= 0 {
			skip = n
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	return skip, limit
}
