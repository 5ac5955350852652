package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/disasterwatch/backend/internal/apperrors"
	"github.com/disasterwatch/backend/internal/models"
	"go.uber.org/zap"
)

// reportColumns is the select list shared by all report queries
const reportColumns = `id, user_id, category, severity, description, latitude, longitude, image_url, status, created_at`

// reportRepository implements ReportRepository
type reportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB, logger *zap.Logger) *reportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new damage report. An id collision surfaces as a Conflict
// error instead of overwriting the existing row.
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, user_id, category, severity, description, latitude, longitude, image_url, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.UserID,
		report.Category,
		report.Severity,
		report.Description,
		report.Latitude,
		report.Longitude,
		report.ImageURL,
		report.Status,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.Conflict("report id already exists")
		}
		r.logger.Error("failed to create report", zap.Error(err), zap.String("report_id", report.ID))
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by ID
func (r *reportRepository) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id = ?`, reportColumns)

	report := &models.Report{}
	err := r.db.QueryRowContext(ctx, query, reportID).Scan(
		&report.ID,
		&report.UserID,
		&report.Category,
		&report.Severity,
		&report.Description,
		&report.Latitude,
		&report.Longitude,
		&report.ImageURL,
		&report.Status,
		&report.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("report not found")
	}
	if err != nil {
		r.logger.Error("failed to get report", zap.Error(err), zap.String("report_id", reportID))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

// GetInBounds retrieves reports inside an inclusive geographic rectangle,
// newest first. A degenerate rectangle (min > max) yields an empty list.
func (r *reportRepository) GetInBounds(ctx context.Context, bounds models.Bounds) ([]models.Report, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM reports
		WHERE latitude BETWEEN ? AND ?
		AND longitude BETWEEN ? AND ?
		ORDER BY created_at DESC, id
	`, reportColumns)

	return r.list(ctx, query, bounds.MinLat, bounds.MaxLat, bounds.MinLng, bounds.MaxLng)
}

// GetAll retrieves all reports, newest first
func (r *reportRepository) GetAll(ctx context.Context) ([]models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports ORDER BY created_at DESC, id`, reportColumns)
	return r.list(ctx, query)
}

// GetByUserID retrieves a user's reports, newest first
func (r *reportRepository) GetByUserID(ctx context.Context, userID int) ([]models.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE user_id = ? ORDER BY created_at DESC, id`, reportColumns)
	return r.list(ctx, query, userID)
}

// list runs a multi-row report query
func (r *reportRepository) list(ctx context.Context, query string, args ...any) ([]models.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query reports", zap.Error(err))
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var report models.Report
		err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Category,
			&report.Severity,
			&report.Description,
			&report.Latitude,
			&report.Longitude,
			&report.ImageURL,
			&report.Status,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}

// UpdateStatus sets a report's status and reports whether a row was updated.
// Transition legality is the caller's concern; this is a raw write.
func (r *reportRepository) UpdateStatus(ctx context.Context, reportID string, status models.Status) (bool, error) {
	query := `UPDATE reports SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, reportID)
	if err != nil {
		r.logger.Error("failed to update report status", zap.Error(err), zap.String("report_id", reportID))
		return false, fmt.Errorf("failed to update report status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}
