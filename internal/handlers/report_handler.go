package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/disasterwatch/backend/internal/middlewares"
	"github.com/disasterwatch/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportService is the interface that wraps methods for report lifecycle business logic.
type ReportService interface {
	// Method Create validates, uploads the image and persists a new report.
	//
	// Invalid severity or coordinates return InvalidInput; a blob-store failure returns Upstream and leaves no row behind.
	Create(ctx context.Context, requester models.Identity, input *models.CreateReportInput, image io.Reader, contentType string) (*models.Report, error)
	// Method List returns reports visible to the requester, or a bounds query when bounds is non-nil.
	List(ctx context.Context, requester models.Identity, bounds *models.Bounds) ([]models.Report, error)
	// Method Get returns a single report, enforcing owner/admin visibility.
	Get(ctx context.Context, requester models.Identity, reportID string) (*models.Report, error)
	// Method UpdateStatus sets a report's status. Administrators only.
	UpdateStatus(ctx context.Context, requester models.Identity, reportID string, status models.Status) (*models.Report, error)
	// Method Stats computes aggregate report counts. Administrators only.
	Stats(ctx context.Context, requester models.Identity) (*models.ReportStats, error)
}

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		reportService: reportService,
	}
}

// RegisterRoutes registers all report handler routes
// Note: This assumes the router is already scoped to /api
func (h *ReportHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Patch("/{id}/status", h.UpdateStatus)
			r.Get("/stats/summary", h.Stats)
		})
	})
}

// Create handles POST /reports
// @Summary Create a damage report
// @Description Create a new geotagged damage report with an image. The image is uploaded to the blob store before anything is persisted.
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param category formData string true "Damage category"
// @Param severity formData string true "Severity (Low, Medium, High)"
// @Param description formData string true "Description"
// @Param latitude formData number true "Latitude"
// @Param longitude formData number true "Longitude"
// @Param image formData file true "Damage photo"
// @Success 201 {object} models.Report "Created report"
// @Failure 400 {object} map[string]string "Invalid form fields"
// @Failure 502 {object} map[string]string "Image upload failed"
// @Router /reports [post]
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	// Parse multipart form (limit to 20MB to match request size limit)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	category := r.FormValue("category")
	severity := r.FormValue("severity")
	description := r.FormValue("description")
	if category == "" || severity == "" || description == "" {
		h.RespondError(w, http.StatusBadRequest, "category, severity, and description are required")
		return
	}

	latitude, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid latitude")
		return
	}
	longitude, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid longitude")
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	input := &models.CreateReportInput{
		Category:    category,
		Severity:    models.Severity(severity),
		Description: description,
		Latitude:    latitude,
		Longitude:   longitude,
	}

	report, err := h.reportService.Create(r.Context(), identity, input, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.Error("failed to create report", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, report)
}

// List handles GET /reports
// @Summary List reports
// @Description List reports. When minLat, maxLat, minLng and maxLng are all present, returns every report inside the rectangle regardless of ownership (map browsing); otherwise admins see all reports and users see their own.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param minLat query number false "Minimum latitude"
// @Param maxLat query number false "Maximum latitude"
// @Param minLng query number false "Minimum longitude"
// @Param maxLng query number false "Maximum longitude"
// @Success 200 {array} models.Report "Reports"
// @Failure 400 {object} map[string]string "Invalid bounds"
// @Router /reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bounds, err := parseBounds(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reports, err := h.reportService.List(r.Context(), identity, bounds)
	if err != nil {
		h.Logger.Error("failed to list reports", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, reports)
}

// Get handles GET /reports/{id}
// @Summary Get a report
// @Description Get a single report by id. Non-admins may only view their own reports.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report id"
// @Success 200 {object} models.Report "Report"
// @Failure 403 {object} map[string]string "Access denied"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	report, err := h.reportService.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// UpdateStatus handles PATCH /reports/{id}/status
// @Summary Update report status
// @Description Set a report's status. Administrators only; any valid status may follow any other.
// @Tags reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report id"
// @Param request body models.StatusUpdateRequest true "New status"
// @Success 200 {object} models.Report "Updated report"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id}/status [patch]
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.reportService.UpdateStatus(r.Context(), identity, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.Logger.Warn("failed to update report status", zap.String("report_id", chi.URLParam(r, "id")), zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, report)
}

// Stats handles GET /reports/stats/summary
// @Summary Report statistics
// @Description Aggregate report counts by status and severity. Administrators only.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.ReportStats "Aggregate counts"
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /reports/stats/summary [get]
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, ok := middlewares.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.reportService.Stats(r.Context(), identity)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}

// parseBounds reads the four bound query parameters. All four present yields
// a bounds query; a partial set falls back to the role-scoped listing.
// Only malformed numbers are an error.
func parseBounds(r *http.Request) (*models.Bounds, error) {
	query := r.URL.Query()
	params := []string{"minLat", "maxLat", "minLng", "maxLng"}

	for _, p := range params {
		if query.Get(p) == "" {
			return nil, nil
		}
	}

	values := make([]float64, len(params))
	for i, p := range params {
		v, err := strconv.ParseFloat(query.Get(p), 64)
		if err != nil {
			return nil, errInvalidBounds
		}
		values[i] = v
	}

	return &models.Bounds{
		MinLat: values[0],
		MaxLat: values[1],
		MinLng: values[2],
		MaxLng: values[3],
	}, nil
}

// errInvalidBounds is returned when a supplied bound parameter is not a number
var errInvalidBounds = errors.New("minLat, maxLat, minLng and maxLng must be numbers")
