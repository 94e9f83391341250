package handlers

import (
	"net/http"

	"github.com/car2chain/inspection-api/internal/middleware"
)

// NewRouter wires every endpoint behind the auth and rate-limit middleware.
// The middleware itself exempts the public endpoints (login, health, schema,
// share reads).
func NewRouter(
	reportHandler *ReportHandler,
	authHandler *AuthHandler,
	healthHandler *HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimitMiddleware,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/verify", authHandler.Verify)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)

	mux.HandleFunc("POST /api/reports", reportHandler.CreateReport)
	mux.HandleFunc("GET /api/reports", reportHandler.ListReports)
	mux.HandleFunc("GET /api/reports/{id}", reportHandler.GetReport)
	mux.HandleFunc("PUT /api/reports/{id}", reportHandler.UpdateReport)
	mux.HandleFunc("DELETE /api/reports/{id}", reportHandler.DeleteReport)
	mux.HandleFunc("POST /api/reports/{id}/share", reportHandler.ShareReport)

	mux.HandleFunc("GET /api/public/reports/{ref}", reportHandler.PublicReport)
	mux.HandleFunc("GET /api/inspection/schema", reportHandler.InspectionSchema)
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	if rateLimiter != nil {
		handler = rateLimiter.RateLimit(120, 60)(handler)
	}
	return handler
}
