// File: internal/volunteer/model.go
package volunteer

import "blood_bank_backend/internal/common"

// Volunteer is a sign-up from the volunteer form.
type Volunteer struct {
	common.BaseModel
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);not null" json:"email"`
	Phone    *string `gorm:"type:varchar(50)" json:"phone"`
	Location *string `gorm:"type:varchar(255)" json:"location"`
}

// TableName specifies the table name for the Volunteer model.
func (Volunteer) TableName() string {
	return "volunteers"
}

// CreateRequest is the body of POST /volunteer.
type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// MsgRequiredFields is returned when name or email is missing.
const MsgRequiredFields = "Name and email required"
