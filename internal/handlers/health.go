package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports service and database status
type HealthHandler struct {
	mongoClient *mongo.Client
	startedAt   time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mongoClient *mongo.Client) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		startedAt:   time.Now(),
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	mongoConnected := false
	if h.mongoClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		mongoConnected = h.mongoClient.Ping(ctx, nil) == nil
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "OK",
		"timestamp":      time.Now().UTC(),
		"uptime":         time.Since(h.startedAt).String(),
		"mongoConnected": mongoConnected,
	})
}
