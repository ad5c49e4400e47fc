// File: internal/bloodrequest/model.go
package bloodrequest

import (
	"blood_bank_backend/internal/common"
)

// Urgency ranks how soon blood is needed.
type Urgency string

const (
	UrgencyEmergency Urgency = "Emergency"
	UrgencyUrgent    Urgency = "Urgent"
	UrgencyNormal    Urgency = "Normal"
)

// Urgencies lists every accepted urgency.
var Urgencies = []Urgency{UrgencyEmergency, UrgencyUrgent, UrgencyNormal}

// IsValid reports whether u is a known urgency.
func (u Urgency) IsValid() bool {
	for _, known := range Urgencies {
		if u == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a request. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// BloodRequest is a public appeal for blood. UserID records who filed it when
// the caller was signed in; it is not a foreign key and survives user deletion.
type BloodRequest struct {
	common.BaseModel
	PatientName    string  `gorm:"type:varchar(255);not null" json:"patientName"`
	BloodGroup     string  `gorm:"type:varchar(5);not null;index" json:"bloodGroup"`
	UnitsNeeded    int     `gorm:"not null" json:"unitsNeeded"`
	Hospital       string  `gorm:"type:varchar(255);not null" json:"hospital"`
	Province       *string `gorm:"type:varchar(100);index" json:"province"`
	City           *string `gorm:"type:varchar(100)" json:"city"`
	ContactName    *string `gorm:"type:varchar(255)" json:"contactName"`
	ContactPhone   string  `gorm:"type:varchar(50);not null" json:"contactPhone"`
	ContactEmail   *string `gorm:"type:varchar(255)" json:"contactEmail"`
	Urgency        Urgency `gorm:"type:varchar(20);not null;default:'Normal';index" json:"urgency"`
	Status         Status  `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	AdditionalInfo *string `gorm:"type:text" json:"additionalInfo"`
	UserID         *uint   `gorm:"index" json:"userId"`
}

// TableName specifies the table name for the BloodRequest model.
func (BloodRequest) TableName() string {
	return "blood_requests"
}

// CreateRequest is the body of POST /blood-requests.
type CreateRequest struct {
	PatientName    string         `json:"patientName"`
	BloodGroup     string         `json:"bloodGroup"`
	UnitsNeeded    common.FlexInt `json:"unitsNeeded"`
	Hospital       string         `json:"hospital"`
	Province       string         `json:"province"`
	City           string         `json:"city"`
	ContactName    string         `json:"contactName"`
	ContactPhone   string         `json:"contactPhone"`
	ContactEmail   string         `json:"contactEmail" binding:"omitempty,email"`
	Urgency        string         `json:"urgency"`
	AdditionalInfo string         `json:"additionalInfo"`
}

// UpdateStatusRequest is the body of PATCH /blood-requests/:id.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Filter narrows a listing. Empty fields do not constrain.
type Filter struct {
	BloodGroup string
	Province   string
	Status     string
	Urgency    string
}

// Messages returned to API clients.
const (
	MsgRequiredFields    = "Patient name, blood group, units needed, hospital, and contact phone are required"
	MsgInvalidUnits      = "Units needed must be a whole number of at least 1"
	MsgInvalidBloodGroup = "Invalid blood group"
	MsgInvalidUrgency    = "Urgency must be one of: Emergency, Urgent, Normal"
	MsgStatusRequired    = "Status is required"
	MsgInvalidStatus     = "Status must be one of: Pending, In Progress, Completed, Cancelled"
	MsgRequestNotFound   = "Blood request not found"
)
