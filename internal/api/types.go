package api

import (
	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/launches"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status      string   `json:"status"`
	Rows        int      `json:"rows"`
	Sites       []string `json:"sites"`
	MinPayload  float64  `json:"min_payload"`
	MaxPayload  float64  `json:"max_payload"`
	DatasetPath string   `json:"dataset_path"`
	LoadedAt    string   `json:"loaded_at"` // RFC3339
}

// LaunchesResponse is the payload for GET /api/v1/launches.
type LaunchesResponse struct {
	Selection dashboard.Selection `json:"selection"`
	Count     int                 `json:"count"`
	Launches  []launches.Record   `json:"launches"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
