// File: internal/user/model.go
package user

import (
	"time"

	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/domain"
	"blood_bank_backend/internal/shared"
)

// User represents the user model in the database. Every registered user is a
// potential donor; admins are users with Role set to "admin".
type User struct {
	common.BaseModel
	Name         string  `gorm:"type:varchar(255);not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"column:password;type:varchar(255);not null"`
	Phone        *string `gorm:"type:varchar(50)"`
	BloodGroup   *string `gorm:"type:varchar(5);index"`
	Province     *string `gorm:"type:varchar(100);index"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

var _ shared.TokenSubject = (*User)(nil)

func (u *User) GetID() uint {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetName() string {
	return u.Name
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// RegisterRequest defines the structure for creating a new account.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Province   string `json:"province"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a partial profile update. A nil field was not
// sent by the client.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	BloodGroup *string `json:"bloodGroup"`
	Province   *string `json:"province"`
}

// UpdateRoleRequest is the admin payload for changing a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	BloodGroup *string   `json:"bloodGroup"`
	Province   *string   `json:"province"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		BloodGroup: user.BloodGroup,
		Province:   user.Province,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

// DonorResponse is the public projection returned by donor search.
type DonorResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	BloodGroup *string `json:"bloodGroup"`
	Province   *string `json:"province"`
	Phone      *string `json:"phone"`
	Email      string  `json:"email"`
}

// ToDonorResponses converts users to the donor projection.
func ToDonorResponses(users []User) []DonorResponse {
	out := make([]DonorResponse, 0, len(users))
	for _, u := range users {
		out = append(out, DonorResponse{
			ID:         u.ID,
			Name:       u.Name,
			BloodGroup: u.BloodGroup,
			Province:   u.Province,
			Phone:      u.Phone,
			Email:      u.Email,
		})
	}
	return out
}

// AdminAccount describes the account the create-admin command provisions.
type AdminAccount struct {
	Email    string
	Name     string
	Password string
}

// Messages returned to API clients.
const (
	MsgRegisterFieldsRequired = "Name, email, and password are required"
	MsgLoginFieldsRequired    = "Email and password are required"
	MsgPasswordTooShort       = "Password must be at least 6 characters"
	MsgEmailTaken             = "User with this email already exists"
	MsgInvalidCredentials     = "Invalid email or password"
	MsgUserNotFound           = "User not found"
	MsgBloodGroupRequired     = "Blood group is required"
	MsgInvalidBloodGroup      = "Invalid blood group"
	MsgInvalidRole            = "Role must be either 'user' or 'admin'"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
