package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/car2chain/inspection-api/internal/inspection"
)

// Status classifies a report. It is set by the operator; it is never derived
// from the rating.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsValidStatus checks if a status is valid
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Report is a single vehicle inspection report. CategoryRatings and
// OverallRating are derived from InspectionResults on every write and are
// never settable by a caller.
type Report struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Vehicle identity
	CustomerName   string `bson:"customer_name" json:"customerName"`
	Make           string `bson:"make" json:"make"`
	Model          string `bson:"model" json:"model"`
	Variant        string `bson:"variant,omitempty" json:"variant,omitempty"`
	Year           int    `bson:"year" json:"year"`
	RegistrationNo string `bson:"registration_no" json:"registrationNo"`
	ChassisNo      string `bson:"chassis_no" json:"chassisNo"`
	EngineNo       string `bson:"engine_no" json:"engineNo"`

	// Descriptive fields
	EngineCapacity   string `bson:"engine_capacity,omitempty" json:"engineCapacity,omitempty"`
	Mileage          int    `bson:"mileage,omitempty" json:"mileage,omitempty"`
	FuelType         string `bson:"fuel_type,omitempty" json:"fuelType,omitempty"`
	TransmissionType string `bson:"transmission_type,omitempty" json:"transmissionType,omitempty"`
	Color            string `bson:"color,omitempty" json:"color,omitempty"`
	RegisteredCity   string `bson:"registered_city,omitempty" json:"registeredCity,omitempty"`

	Location       string    `bson:"location" json:"location"`
	InspectionDate time.Time `bson:"inspection_date" json:"inspectionDate"`
	Inspector      string    `bson:"inspector" json:"inspector"`

	// VehicleImage is an opaque embedded photo handle (base64 data URL).
	VehicleImage string `bson:"vehicle_image,omitempty" json:"vehicleImage,omitempty"`

	InspectionResults inspection.Results `bson:"inspection_results" json:"inspectionResults"`
	CategoryRatings   map[string]float64 `bson:"category_ratings" json:"categoryRatings"`
	OverallRating     float64            `bson:"overall_rating" json:"overallRating"`

	Status   Status `bson:"status" json:"status"`
	Comments string `bson:"comments,omitempty" json:"comments,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateReportRequest carries the fields a caller may supply when creating a
// report. CategoryRatings and OverallRating are accepted on the wire but
// ignored; the server always recomputes them from InspectionResults.
type CreateReportRequest struct {
	CustomerName   string `json:"customerName"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Variant        string `json:"variant"`
	Year           int    `json:"year"`
	RegistrationNo string `json:"registrationNo"`
	ChassisNo      string `json:"chassisNo"`
	EngineNo       string `json:"engineNo"`

	EngineCapacity   string `json:"engineCapacity"`
	Mileage          int    `json:"mileage"`
	FuelType         string `json:"fuelType"`
	TransmissionType string `json:"transmissionType"`
	Color            string `json:"color"`
	RegisteredCity   string `json:"registeredCity"`

	Location       string    `json:"location"`
	InspectionDate time.Time `json:"inspectionDate"`
	Inspector      string    `json:"inspector"`

	VehicleImage string `json:"vehicleImage"`

	InspectionResults inspection.Results `json:"inspectionResults"`
	CategoryRatings   map[string]float64 `json:"categoryRatings"`
	OverallRating     float64            `json:"overallRating"`

	Status   Status `json:"status"`
	Comments string `json:"comments"`
}

// UpdateReportRequest carries a partial update. Nil fields are left
// untouched; InspectionResults, when present, replaces the stored mapping
// wholesale (no deep merge). Caller-supplied ratings are ignored here too.
type UpdateReportRequest struct {
	CustomerName   *string `json:"customerName"`
	Make           *string `json:"make"`
	Model          *string `json:"model"`
	Variant        *string `json:"variant"`
	Year           *int    `json:"year"`
	RegistrationNo *string `json:"registrationNo"`
	ChassisNo      *string `json:"chassisNo"`
	EngineNo       *string `json:"engineNo"`

	EngineCapacity   *string `json:"engineCapacity"`
	Mileage          *int    `json:"mileage"`
	FuelType         *string `json:"fuelType"`
	TransmissionType *string `json:"transmissionType"`
	Color            *string `json:"color"`
	RegisteredCity   *string `json:"registeredCity"`

	Location       *string    `json:"location"`
	InspectionDate *time.Time `json:"inspectionDate"`
	Inspector      *string    `json:"inspector"`

	VehicleImage *string `json:"vehicleImage"`

	InspectionResults inspection.Results `json:"inspectionResults"`

	Status   *Status `json:"status"`
	Comments *string `json:"comments"`
}
