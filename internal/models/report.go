package models

import "time"

// Severity is a damage report severity level
type Severity string

// Severity constants
const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Valid reports whether the severity is one of the closed set.
// Invalid values are rejected before reaching storage, never coerced.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Status is a damage report lifecycle state
type Status string

// Status constants. A report starts Unverified; any status may follow any
// other (the lifecycle imposes no transition graph, only set membership).
const (
	StatusUnverified Status = "Unverified"
	StatusVerified   Status = "Verified"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Valid reports whether the status is one of the closed set
func (s Status) Valid() bool {
	switch s {
	case StatusUnverified, StatusVerified, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Report represents a geotagged damage report
type Report struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Category    string    `json:"category"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ImageURL    string    `json:"image_url"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateReportInput carries the multipart form fields of a new report
type CreateReportInput struct {
	Category    string
	Severity    Severity
	Description string
	Latitude    float64
	Longitude   float64
}

// Bounds is an inclusive geographic rectangle for report queries
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// StatusUpdateRequest represents a status update request body
type StatusUpdateRequest struct {
	Status Status `json:"status"`
}

// ReportStats holds aggregate report counts for the admin dashboard
type ReportStats struct {
	Total          int `json:"total"`
	Unverified     int `json:"unverified"`
	Verified       int `json:"verified"`
	InProgress     int `json:"in_progress"`
	Resolved       int `json:"resolved"`
	HighSeverity   int `json:"high_severity"`
	MediumSeverity int `json:"medium_severity"`
	LowSeverity    int `json:"low_severity"`
}
