package services

import (
	"context"
	"io"
	"time"

	"github.com/disasterwatch/backend/internal/apperrors"
	"github.com/disasterwatch/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportRepository is the interface that wraps methods for Report table data access
type ReportRepository interface {
	// Method Create inserts a new report.
	//
	// An id collision is reported as a Conflict error, never an overwrite.
	Create(ctx context.Context, report *models.Report) error
	// Method GetByID retrieves a report by ID.
	//
	// If no report with such ID exists, a NotFound error is returned together with "nil" value.
	GetByID(ctx context.Context, reportID string) (*models.Report, error)
	// Method GetInBounds retrieves reports inside an inclusive rectangle, newest first.
	GetInBounds(ctx context.Context, bounds models.Bounds) ([]models.Report, error)
	// Method GetAll retrieves all reports, newest first.
	GetAll(ctx context.Context) ([]models.Report, error)
	// Method GetByUserID retrieves a user's reports, newest first.
	GetByUserID(ctx context.Context, userID int) ([]models.Report, error)
	// Method UpdateStatus sets a report's status and reports whether a row was updated.
	UpdateStatus(ctx context.Context, reportID string, status models.Status) (bool, error)
}

// ImageStore is the interface that wraps the blob-store upload used for report images
type ImageStore interface {
	// Method Upload stores image bytes and returns a durable public URL.
	Upload(ctx context.Context, reader io.Reader, contentType string) (string, error)
}

// reportService enforces the report lifecycle rules above raw storage:
// closed-set enum validation, per-role visibility and status update authority.
type reportService struct {
	reportRepo    ReportRepository
	imageStore    ImageStore
	uploadTimeout time.Duration
	logger        *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(reportRepo ReportRepository, imageStore ImageStore, uploadTimeout time.Duration, logger *zap.Logger) *reportService {
	return &reportService{
		reportRepo:    reportRepo,
		imageStore:    imageStore,
		uploadTimeout: uploadTimeout,
		logger:        logger,
	}
}

// Create validates the report fields, uploads the image and persists the
// report. The upload happens before any database write, so a blob-store
// failure never leaves an orphan report row.
func (s *reportService) Create(ctx context.Context, requester models.Identity, input *models.CreateReportInput, image io.Reader, contentType string) (*models.Report, error) {
	if !input.Severity.Valid() {
		return nil, apperrors.InvalidInput("severity must be one of Low, Medium, High")
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return nil, apperrors.InvalidInput("latitude must be between -90 and 90")
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return nil, apperrors.InvalidInput("longitude must be between -180 and 180")
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	imageURL, err := s.imageStore.Upload(uploadCtx, image, contentType)
	if err != nil {
		s.logger.Error("image upload failed", zap.Error(err))
		return nil, apperrors.Upstream("failed to upload image", err)
	}

	report := &models.Report{
		ID:          uuid.NewString(),
		UserID:      requester.UserID,
		Category:    input.Category,
		Severity:    input.Severity,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageURL:    imageURL,
		Status:      models.StatusUnverified,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	// Re-read the persisted row so the response reflects exactly what the
	// storage layer kept (defaults, timestamps).
	return s.reportRepo.GetByID(ctx, report.ID)
}

// List returns reports visible to the requester. When bounds are supplied the
// query covers every user's reports regardless of role, to support map-based
// browsing; otherwise admins see everything and users see their own.
func (s *reportService) List(ctx context.Context, requester models.Identity, bounds *models.Bounds) ([]models.Report, error) {
	if bounds != nil {
		return s.reportRepo.GetInBounds(ctx, *bounds)
	}

	if requester.Role == models.RoleAdmin {
		return s.reportRepo.GetAll(ctx)
	}
	return s.reportRepo.GetByUserID(ctx, requester.UserID)
}

// Get returns a single report. Admins may view any report; other users only
// their own. A foreign report is Forbidden, a missing one NotFound.
func (s *reportService) Get(ctx context.Context, requester models.Identity, reportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if requester.Role != models.RoleAdmin && report.UserID != requester.UserID {
		return nil, apperrors.Forbidden("access denied")
	}

	return report, nil
}

// UpdateStatus sets a report's status. Only administrators may call it.
// Any valid status may follow any other; there is no transition graph.
func (s *reportService) UpdateStatus(ctx context.Context, requester models.Identity, reportID string, status models.Status) (*models.Report, error) {
	if requester.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only administrators can update report status")
	}
	if !status.Valid() {
		return nil, apperrors.InvalidInput("status must be one of Unverified, Verified, In Progress, Resolved")
	}

	updated, err := s.reportRepo.UpdateStatus(ctx, reportID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.NotFound("report not found")
	}

	return s.reportRepo.GetByID(ctx, reportID)
}

// Stats computes aggregate report counts. Only administrators may call it.
func (s *reportService) Stats(ctx context.Context, requester models.Identity) (*models.ReportStats, error) {
	if requester.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("only administrators can view statistics")
	}

	reports, err := s.reportRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.ReportStats{Total: len(reports)}
	for _, report := range reports {
		switch report.Status {
		case models.StatusUnverified:
			stats.Unverified++
		case models.StatusVerified:
			stats.Verified++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		}

		switch report.Severity {
		case models.SeverityHigh:
			stats.HighSeverity++
		case models.SeverityMedium:
			stats.MediumSeverity++
		case models.SeverityLow:
			stats.LowSeverity++
		}
	}

	return stats, nil
}
