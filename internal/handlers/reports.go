package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/car2chain/inspection-api/internal/inspection"
	"github.com/car2chain/inspection-api/internal/models"
	"github.com/car2chain/inspection-api/internal/reports"
)

// ReportHandler handles report CRUD and share requests
type ReportHandler struct {
	service *reports.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *reports.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// validationResponse is the 400 body for validation failures.
type validationResponse struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields,omitempty"`
	Field         string   `json:"field,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.CreateReportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	report, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeReportError(w, err, "Error creating report")
		return
	}

	log.WithFields(log.Fields{
		"report_id": report.ID.Hex(),
		"customer":  report.CustomerName,
		"overall":   report.OverallRating,
	}).Info("report created")

	writeJSON(w, http.StatusCreated, report)
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list reports")
		http.Error(w, "Error fetching reports", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, all)
}

// GetReport handles GET /api/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeReportError(w, err, "Error fetching report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// UpdateReport handles PUT /api/reports/{id}
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.UpdateReportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	report, err := h.service.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeReportError(w, err, "Error updating report")
		return
	}

	log.WithField("report_id", report.ID.Hex()).Info("report updated")
	writeJSON(w, http.StatusOK, report)
}

// DeleteReport handles DELETE /api/reports/{id}
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeReportError(w, err, "Error deleting report")
		return
	}

	log.WithField("report_id", deleted.ID.Hex()).Info("report deleted")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Report deleted successfully",
		"deletedReport": deleted.ID.Hex(),
	})
}

// ShareReport handles POST /api/reports/{id}/share
func (h *ReportHandler) ShareReport(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.MintShareLink(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeReportError(w, err, "Error creating share link")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"shareToken": link.Token,
		"expiresAt":  link.ExpiresAt,
	})
}

// PublicReport handles GET /api/public/reports/{ref}. No authentication is
// consulted. The reference is a share token or a report id; unknown and
// expired references both render as a generic 404 so a visitor cannot tell
// whether a link ever existed; the distinction is kept in the logs.
func (h *ReportHandler) PublicReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ResolvePublic(r.Context(), r.PathValue("ref"))
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrShareLinkExpired), errors.Is(err, reports.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Report not available"})
		default:
			log.WithError(err).Error("failed to resolve public report reference")
			http.Error(w, "Error fetching report", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// InspectionSchema handles GET /api/inspection/schema. Serves the shared
// checklist so every client renders the same categories, items and options.
func (h *ReportHandler) InspectionSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": inspection.Categories,
		"schema":     inspection.Schema(),
	})
}

// writeReportError translates service errors into transport responses.
// Validation details are surfaced verbatim; everything else is generic.
func (h *ReportHandler) writeReportError(w http.ResponseWriter, err error, genericMessage string) {
	var verr *reports.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Message:       "Validation failed",
			MissingFields: verr.MissingFields,
			Field:         verr.Field,
			Reason:        verr.Reason,
		})
	case errors.Is(err, reports.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Report not found"})
	default:
		log.WithError(err).Error(genericMessage)
		http.Error(w, genericMessage, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
