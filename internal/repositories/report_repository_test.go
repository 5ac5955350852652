package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/disasterwatch/backend/internal/apperrors"
	"github.com/disasterwatch/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// reportRows lists the columns returned by report queries
var reportRows = []string{"id", "user_id", "category", "severity", "description", "latitude", "longitude", "image_url", "status", "created_at"}

// setupReportTestRepository creates a report repository with a mock database
func setupReportTestRepository(t *testing.T) (*reportRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewReportRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

// sampleReport returns a report with every field populated
func sampleReport(id string, createdAt time.Time) models.Report {
	return models.Report{
		ID:          id,
		UserID:      1,
		Category:    "Flooding",
		Severity:    models.SeverityHigh,
		Description: "Street under water",
		Latitude:    19.07,
		Longitude:   72.87,
		ImageURL:    "https://storage.googleapis.com/test-bucket/disaster-reports/img.jpg",
		Status:      models.StatusUnverified,
		CreatedAt:   createdAt,
	}
}

// addReportRow appends a report to a sqlmock row set
func addReportRow(rows *sqlmock.Rows, r models.Report) *sqlmock.Rows {
	return rows.AddRow(r.ID, r.UserID, r.Category, r.Severity, r.Description, r.Latitude, r.Longitude, r.ImageURL, r.Status, r.CreatedAt)
}

func TestReportRepository_Create(t *testing.T) {
	report := sampleReport("report-id-1", time.Time{})

	tests := []struct {
		name         string
		setupMock    func(sqlmock.Sqlmock)
		expectedErr  error
		expectAnyErr bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reports`).
					WithArgs(report.ID, report.UserID, report.Category, report.Severity, report.Description,
						report.Latitude, report.Longitude, report.ImageURL, report.Status).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "id collision",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reports`).
					WithArgs(report.ID, report.UserID, report.Category, report.Severity, report.Description,
						report.Latitude, report.Longitude, report.ImageURL, report.Status).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'report-id-1' for key 'PRIMARY'"})
			},
			expectedErr: apperrors.Conflict(""),
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reports`).
					WithArgs(report.ID, report.UserID, report.Category, report.Severity, report.Description,
						report.Latitude, report.Longitude, report.ImageURL, report.Status).
					WillReturnError(errors.New("database error"))
			},
			expectAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupReportTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			r := report
			err := repo.Create(context.Background(), &r)

			switch {
			case tt.expectedErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.expectAnyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportRepository_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	report := sampleReport("report-id-1", createdAt)

	tests := []struct {
		name        string
		reportID    string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:     "success",
			reportID: "report-id-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := addReportRow(sqlmock.NewRows(reportRows), report)
				mock.ExpectQuery(`SELECT (.+) FROM reports WHERE id = \?`).
					WithArgs("report-id-1").
					WillReturnRows(rows)
			},
		},
		{
			name:     "not found",
			reportID: "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM reports WHERE id = \?`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: apperrors.NotFound(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupReportTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			got, err := repo.GetByID(context.Background(), tt.reportID)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &report, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportRepository_GetInBounds(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newer := sampleReport("report-newer", base.Add(time.Hour))
	older := sampleReport("report-older", base)

	repo, mock, cleanup := setupReportTestRepository(t)
	defer cleanup()

	// Newest first
	rows := sqlmock.NewRows(reportRows)
	rows = addReportRow(rows, newer)
	rows = addReportRow(rows, older)

	mock.ExpectQuery(`SELECT (.+) FROM reports\s+WHERE latitude BETWEEN \? AND \?\s+AND longitude BETWEEN \? AND \?`).
		WithArgs(18.0, 20.0, 72.0, 73.0).
		WillReturnRows(rows)

	reports, err := repo.GetInBounds(context.Background(), models.Bounds{MinLat: 18, MaxLat: 20, MinLng: 72, MaxLng: 73})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "report-newer", reports[0].ID)
	assert.Equal(t, "report-older", reports[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A degenerate rectangle matches no rows and yields an empty list, not an error
func TestReportRepository_GetInBounds_Empty(t *testing.T) {
	repo, mock, cleanup := setupReportTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM reports\s+WHERE latitude BETWEEN \? AND \?`).
		WithArgs(20.0, 18.0, 72.0, 73.0).
		WillReturnRows(sqlmock.NewRows(reportRows))

	reports, err := repo.GetInBounds(context.Background(), models.Bounds{MinLat: 20, MaxLat: 18, MinLng: 72, MaxLng: 73})
	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetAll(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	report := sampleReport("report-id-1", base)

	repo, mock, cleanup := setupReportTestRepository(t)
	defer cleanup()

	rows := addReportRow(sqlmock.NewRows(reportRows), report)
	mock.ExpectQuery(`SELECT (.+) FROM reports ORDER BY created_at DESC`).
		WillReturnRows(rows)

	reports, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report, reports[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetByUserID(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	report := sampleReport("report-id-1", base)

	repo, mock, cleanup := setupReportTestRepository(t)
	defer cleanup()

	rows := addReportRow(sqlmock.NewRows(reportRows), report)
	mock.ExpectQuery(`SELECT (.+) FROM reports WHERE user_id = \?`).
		WithArgs(1).
		WillReturnRows(rows)

	reports, err := repo.GetByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		setupMock    func(sqlmock.Sqlmock)
		expectedOK   bool
		expectAnyErr bool
	}{
		{
			name: "row updated",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE reports SET status = \? WHERE id = \?`).
					WithArgs(models.StatusVerified, "report-id-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedOK: true,
		},
		{
			name: "no such report",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE reports SET status = \? WHERE id = \?`).
					WithArgs(models.StatusVerified, "report-id-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedOK: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE reports SET status = \? WHERE id = \?`).
					WithArgs(models.StatusVerified, "report-id-1").
					WillReturnError(errors.New("database error"))
			},
			expectAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupReportTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			ok, err := repo.UpdateStatus(context.Background(), "report-id-1", models.StatusVerified)

			if tt.expectAnyErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedOK, ok)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
