// Package reports implements the report aggregate: validation, rating
// recomputation on every write, and share link issuance. Ratings are always
// derived from the inspection answers at write time; read paths return
// persisted state as-is. Concurrent updates to the same report are
// last-write-wins, matching the storage collaborator's native behavior.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/car2chain/inspection-api/internal/db"
	"github.com/car2chain/inspection-api/internal/events"
	"github.com/car2chain/inspection-api/internal/inspection"
	"github.com/car2chain/inspection-api/internal/models"
)

// minSubmissionItems is the minimum number of answered checklist items
// required to create a report with status "completed". Creates with other
// statuses and all updates are exempt.
const minSubmissionItems = 3

// Service orchestrates report reads and writes against the storage
// collaborator.
type Service struct {
	reports   db.ReportCollection
	shares    db.ShareLinkCollection
	publisher events.Publisher

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewService creates a report service. A nil publisher disables event
// publishing.
func NewService(reports db.ReportCollection, shares db.ShareLinkCollection, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		reports:   reports,
		shares:    shares,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create validates the request, computes ratings from the inspection answers
// and persists a new report. Caller-supplied rating values are ignored.
func (s *Service) Create(ctx context.Context, req models.CreateReportRequest) (*models.Report, error) {
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.IsValidStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", req.Status)}
	}

	results := req.InspectionResults
	if results == nil {
		results = inspection.Results{}
	}

	report := models.Report{
		CustomerName:      req.CustomerName,
		Make:              req.Make,
		Model:             req.Model,
		Variant:           req.Variant,
		Year:              req.Year,
		RegistrationNo:    req.RegistrationNo,
		ChassisNo:         req.ChassisNo,
		EngineNo:          req.EngineNo,
		EngineCapacity:    req.EngineCapacity,
		Mileage:           req.Mileage,
		FuelType:          req.FuelType,
		TransmissionType:  req.TransmissionType,
		Color:             req.Color,
		RegisteredCity:    req.RegisteredCity,
		Location:          req.Location,
		InspectionDate:    req.InspectionDate,
		Inspector:         req.Inspector,
		VehicleImage:      req.VehicleImage,
		InspectionResults: results,
		Status:            status,
		Comments:          req.Comments,
	}

	if err := validateReport(&report); err != nil {
		return nil, err
	}
	if status == models.StatusCompleted && inspection.AnsweredItems(results) < minSubmissionItems {
		return nil, &ValidationError{
			Field:  "inspectionResults",
			Reason: fmt.Sprintf("at least %d inspection items must be answered to submit a completed report", minSubmissionItems),
		}
	}

	report.CategoryRatings = inspection.ScoreAllCategories(results)
	report.OverallRating = inspection.ScoreOverall(results)

	now := s.now()
	report.CreatedAt = now
	report.UpdatedAt = now

	id, err := s.reports.InsertReport(ctx, report)
	if err != nil {
		return nil, err
	}
	report.ID = id

	s.publish(events.ReportCreated, &report)
	return &report, nil
}

// Update merges the partial request onto the stored report, recomputes
// ratings unconditionally and re-validates before persisting. Id and
// createdAt are immutable.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateReportRequest) (*models.Report, error) {
	existing, err := s.reports.FindReportByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	merged := *existing
	applyUpdate(&merged, req)

	if !models.IsValidStatus(merged.Status) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", merged.Status)}
	}
	if err := validateReport(&merged); err != nil {
		return nil, err
	}

	// Recompute even when the answers did not change: idempotent, cheap, and
	// guarantees ratings never drift from the stored answers.
	merged.CategoryRatings = inspection.ScoreAllCategories(merged.InspectionResults)
	merged.OverallRating = inspection.ScoreOverall(merged.InspectionResults)

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedAt = s.now()

	if err := s.reports.UpdateReportByID(ctx, id, merged); err != nil {
		return nil, mapStorageErr(err)
	}

	s.publish(events.ReportUpdated, &merged)
	return &merged, nil
}

// Delete removes a report permanently and returns the deleted snapshot.
func (s *Service) Delete(ctx context.Context, id string) (*models.Report, error) {
	deleted, err := s.reports.DeleteReportByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	s.publish(events.ReportDeleted, deleted)
	return deleted, nil
}

// Get returns a report by id. Persisted state is returned as-is; ratings are
// not recomputed on read.
func (s *Service) Get(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.reports.FindReportByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return report, nil
}

// List returns all reports, newest first.
func (s *Service) List(ctx context.Context) ([]models.Report, error) {
	return s.reports.FindReports(ctx)
}

// MintShareLink creates a share token for an existing report, valid for 30
// days.
func (s *Service) MintShareLink(ctx context.Context, reportID string) (*models.ShareLink, error) {
	report, err := s.reports.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	now := s.now()
	link := models.ShareLink{
		Token:     newShareToken(now),
		ReportID:  report.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(models.ShareLinkTTL),
	}

	if err := s.shares.InsertShareLink(ctx, link); err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByShareToken resolves a share token to its report. Returns ErrNotFound
// for unknown tokens and ErrShareLinkExpired for tokens past their window.
func (s *Service) GetByShareToken(ctx context.Context, token string) (*models.Report, error) {
	link, err := s.shares.FindShareLinkByToken(ctx, token)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	if link.Expired(s.now()) {
		log.WithFields(log.Fields{
			"token":      token,
			"report_id":  link.ReportID.Hex(),
			"expired_at": link.ExpiresAt,
		}).Warn("expired share link accessed")
		return nil, ErrShareLinkExpired
	}

	report, err := s.reports.FindReportByID(ctx, link.ReportID.Hex())
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return report, nil
}

// ResolvePublic resolves an unauthenticated report reference: a share token
// first, falling back to a direct report id when no token matches. Expired
// tokens do not fall back; they keep their ErrShareLinkExpired identity.
func (s *Service) ResolvePublic(ctx context.Context, ref string) (*models.Report, error) {
	report, err := s.GetByShareToken(ctx, ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return report, err
	}
	return s.Get(ctx, ref)
}

func (s *Service) publish(event events.EventType, report *models.Report) {
	err := s.publisher.PublishReportEvent(events.ReportEvent{
		Event:         event,
		ReportID:      report.ID.Hex(),
		Status:        string(report.Status),
		OverallRating: report.OverallRating,
		Timestamp:     s.now(),
	})
	if err != nil {
		log.WithError(err).WithField("report_id", report.ID.Hex()).Warn("failed to publish report event")
	}
}

// newShareToken mints an opaque token with a random and a timestamp
// component.
func newShareToken(now time.Time) string {
	return "share_" + uuid.NewString() + "_" + strconv.FormatInt(now.UnixMilli(), 36)
}

// validateReport enforces the presence and format invariants that apply to
// every persisted write. Missing fields are reported by wire name, all at
// once.
func validateReport(r *models.Report) error {
	var missing []string
	if r.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if r.Make == "" {
		missing = append(missing, "make")
	}
	if r.Model == "" {
		missing = append(missing, "model")
	}
	if r.Year == 0 {
		missing = append(missing, "year")
	}
	if r.RegistrationNo == "" {
		missing = append(missing, "registrationNo")
	}
	if r.ChassisNo == "" {
		missing = append(missing, "chassisNo")
	}
	if r.EngineNo == "" {
		missing = append(missing, "engineNo")
	}
	if r.Location == "" {
		missing = append(missing, "location")
	}
	if r.InspectionDate.IsZero() {
		missing = append(missing, "inspectionDate")
	}
	if r.Inspector == "" {
		missing = append(missing, "inspector")
	}
	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}

	// Format checks run after presence, first violation reported.
	if len(r.ChassisNo) < 5 {
		return &ValidationError{Field: "chassisNo", Reason: "must be at least 5 characters long"}
	}
	if len(r.EngineNo) < 5 {
		return &ValidationError{Field: "engineNo", Reason: "must be at least 5 characters long"}
	}
	if len(r.RegistrationNo) < 3 {
		return &ValidationError{Field: "registrationNo", Reason: "must be at least 3 characters long"}
	}
	return nil
}

// applyUpdate shallow-merges the partial request onto the report.
// InspectionResults replaces the stored mapping wholesale when present.
func applyUpdate(r *models.Report, req models.UpdateReportRequest) {
	if req.CustomerName != nil {
		r.CustomerName = *req.CustomerName
	}
	if req.Make != nil {
		r.Make = *req.Make
	}
	if req.Model != nil {
		r.Model = *req.Model
	}
	if req.Variant != nil {
		r.Variant = *req.Variant
	}
	if req.Year != nil {
		r.Year = *req.Year
	}
	if req.RegistrationNo != nil {
		r.RegistrationNo = *req.RegistrationNo
	}
	if req.ChassisNo != nil {
		r.ChassisNo = *req.ChassisNo
	}
	if req.EngineNo != nil {
		r.EngineNo = *req.EngineNo
	}
	if req.EngineCapacity != nil {
		r.EngineCapacity = *req.EngineCapacity
	}
	if req.Mileage != nil {
		r.Mileage = *req.Mileage
	}
	if req.FuelType != nil {
		r.FuelType = *req.FuelType
	}
	if req.TransmissionType != nil {
		r.TransmissionType = *req.TransmissionType
	}
	if req.Color != nil {
		r.Color = *req.Color
	}
	if req.RegisteredCity != nil {
		r.RegisteredCity = *req.RegisteredCity
	}
	if req.Location != nil {
		r.Location = *req.Location
	}
	if req.InspectionDate != nil {
		r.InspectionDate = *req.InspectionDate
	}
	if req.Inspector != nil {
		r.Inspector = *req.Inspector
	}
	if req.VehicleImage != nil {
		r.VehicleImage = *req.VehicleImage
	}
	if req.InspectionResults != nil {
		r.InspectionResults = req.InspectionResults
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.Comments != nil {
		r.Comments = *req.Comments
	}
}

func mapStorageErr(err error) error {
	if errors.Is(err, db.ErrNoDocument) {
		return ErrNotFound
	}
	return err
}
