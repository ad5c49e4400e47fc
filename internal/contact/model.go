// File: internal/contact/model.go
package contact

import "blood_bank_backend/internal/common"

// Message is a submission from the public contact form.
type Message struct {
	common.BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`
}

// TableName specifies the table name for contact messages.
func (Message) TableName() string {
	return "contacts"
}

// CreateRequest is the body of POST /contact.
type CreateRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

const MsgRequiredFields = "Name, email, and message required"
