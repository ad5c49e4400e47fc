// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// UserEmailKey is the context key for storing the authenticated user's email
	UserEmailKey = "userEmail"
	// UserNameKey is the context key for storing the authenticated user's display name
	UserNameKey = "userName"
	// UserClaimsKey stores the whole claims object
	UserClaimsKey = "userClaims"
	// UserRoleKey is set by the admin gate after the role has been read from the store
	UserRoleKey = "userRole"
)
