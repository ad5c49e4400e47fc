package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/domain"
	"blood_bank_backend/internal/platform/crypto"
	"blood_bank_backend/internal/shared"

	"go.uber.org/zap"
)

// Service defines the user operations exposed to handlers, the admin gate and the CLI.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*User, error)
	SearchDonors(ctx context.Context, bloodGroup, province string) ([]User, error)
	GetRoleByID(ctx context.Context, id uint) (string, error)
	ListUsers(ctx context.Context, search string, pq common.PageQuery) ([]User, *common.Pagination, error)
	ChangeRole(ctx context.Context, actorID, targetID uint, role string) (*User, error)
	DeleteUser(ctx context.Context, actorID, targetID uint) error
	CountUsers(ctx context.Context) (int64, error)
	RecentUsers(ctx context.Context, n int) ([]User, error)
	EnsureAdmin(ctx context.Context, account AdminAccount) (*User, bool, error)
	PromoteToAdmin(ctx context.Context, email string) (*User, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo         Repository
	tokenService shared.TokenService
	hasher       *crypto.PasswordHasher
	logger       *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)
var _ shared.RoleLookup = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	tokenService shared.TokenService,
	hasher *crypto.PasswordHasher,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:         repo,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       logger,
	}
}

// optionalString trims s and maps the empty string to NULL.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Register creates a new donor account and signs a token for it.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, "", common.ErrValidation.WithMessage(MsgRegisterFieldsRequired)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, "", common.ErrValidation.WithMessage(MsgPasswordTooShort)
	}
	bloodGroup := optionalString(req.BloodGroup)
	if bloodGroup != nil {
		normalized := domain.NormalizeBloodGroup(*bloodGroup)
		if !domain.IsValidBloodGroup(normalized) {
			return nil, "", common.ErrValidation.WithMessage(MsgInvalidBloodGroup)
		}
		bloodGroup = &normalized
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", common.ErrConflict.WithMessage(MsgEmailTaken)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user by email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, "", err
	}

	dbUser := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        optionalString(req.Phone),
		BloodGroup:   bloodGroup,
		Province:     optionalString(req.Province),
		Role:         domain.RoleUser,
	}
	if err := s.repo.Create(ctx, dbUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, "", apiErr
		}
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", email))
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.tokenService.GenerateToken(dbUser)
	if err != nil {
		s.logger.Error("Failed to generate token after registration", zap.Error(err), zap.Uint("userID", dbUser.ID))
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User registered successfully", zap.Uint("userID", dbUser.ID))
	return dbUser, token, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *ServiceImplementation) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", common.ErrValidation.WithMessage(MsgLoginFieldsRequired)
	}

	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info("Login attempt for unknown email", zap.String("email", email))
			return nil, "", common.ErrUnauthorized.WithMessage(MsgInvalidCredentials)
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(dbUser.PasswordHash, req.Password) {
		s.logger.Warn("Invalid password attempt", zap.Uint("userID", dbUser.ID))
		return nil, "", common.ErrUnauthorized.WithMessage(MsgInvalidCredentials)
	}

	token, _, err := s.tokenService.GenerateToken(dbUser)
	if err != nil {
		s.logger.Error("Failed to generate token on login", zap.Error(err), zap.Uint("userID", dbUser.ID))
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully", zap.Uint("userID", dbUser.ID))
	return dbUser, token, nil
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies name and bloodGroup only when non-empty. Phone and
// province are applied whenever sent, so "" clears them.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		dbUser.Name = strings.TrimSpace(*req.Name)
	}
	if req.BloodGroup != nil && strings.TrimSpace(*req.BloodGroup) != "" {
		normalized := domain.NormalizeBloodGroup(*req.BloodGroup)
		if !domain.IsValidBloodGroup(normalized) {
			return nil, common.ErrValidation.WithMessage(MsgInvalidBloodGroup)
		}
		dbUser.BloodGroup = &normalized
	}
	if req.Phone != nil {
		dbUser.Phone = optionalString(*req.Phone)
	}
	if req.Province != nil {
		dbUser.Province = optionalString(*req.Province)
	}

	if err := s.repo.Update(ctx, dbUser); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.logger.Info("Profile updated", zap.Uint("userID", id))
	return dbUser, nil
}

// SearchDonors finds donors by exact blood group and optional province.
func (s *ServiceImplementation) SearchDonors(ctx context.Context, bloodGroup, province string) ([]User, error) {
	bloodGroup = domain.NormalizeBloodGroup(bloodGroup)
	if bloodGroup == "" {
		return nil, common.ErrValidation.WithMessage(MsgBloodGroupRequired)
	}
	return s.repo.SearchDonors(ctx, bloodGroup, strings.TrimSpace(province), common.PublicListCap)
}

// GetRoleByID implements shared.RoleLookup for the admin gate.
func (s *ServiceImplementation) GetRoleByID(ctx context.Context, id uint) (string, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return dbUser.Role, nil
}

func (s *ServiceImplementation) ListUsers(ctx context.Context, search string, pq common.PageQuery) ([]User, *common.Pagination, error) {
	users, total, err := s.repo.List(ctx, search, pq.Offset(), pq.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, common.NewPagination(total, pq.Page, pq.Limit), nil
}

// ChangeRole sets targetID's role. An admin may not change their own role.
func (s *ServiceImplementation) ChangeRole(ctx context.Context, actorID, targetID uint, role string) (*User, error) {
	role = strings.TrimSpace(role)
	if !domain.IsValidRole(role) {
		return nil, common.ErrValidation.WithMessage(MsgInvalidRole)
	}
	if actorID == targetID {
		return nil, common.ErrBadRequest.WithMessage("You cannot change your own role")
	}
	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}
	s.logger.Info("User role changed", zap.Uint("actorID", actorID), zap.Uint("targetID", targetID), zap.String("role", role))
	return s.repo.FindByID(ctx, targetID)
}

// DeleteUser removes targetID. Their blood requests are kept.
func (s *ServiceImplementation) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return common.ErrBadRequest.WithMessage("You cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.Uint("actorID", actorID), zap.Uint("targetID", targetID))
	return nil
}

func (s *ServiceImplementation) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImplementation) RecentUsers(ctx context.Context, n int) ([]User, error) {
	return s.repo.Recent(ctx, n)
}

// EnsureAdmin creates the admin account or promotes the existing user with
// that email. The bool result reports whether a new account was created.
func (s *ServiceImplementation) EnsureAdmin(ctx context.Context, account AdminAccount) (*User, bool, error) {
	email := NormalizeEmail(account.Email)
	if email == "" {
		return nil, false, common.ErrValidation.WithMessage("Admin email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			if err := s.repo.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
				return nil, false, err
			}
			existing.Role = domain.RoleAdmin
		}
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	if len(account.Password) < MinPasswordLength {
		return nil, false, common.ErrValidation.WithMessage(MsgPasswordTooShort)
	}
	hashedPassword, err := s.hasher.Hash(account.Password)
	if err != nil {
		return nil, false, err
	}
	bloodGroup, province := "O+", "Bagmati"
	admin := &User{
		Name:         strings.TrimSpace(account.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		BloodGroup:   &bloodGroup,
		Province:     &province,
		Role:         domain.RoleAdmin,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, false, err
	}
	s.logger.Info("Admin account created", zap.Uint("userID", admin.ID), zap.String("email", email))
	return admin, true, nil
}

// PromoteToAdmin grants the admin role to an existing account.
func (s *ServiceImplementation) PromoteToAdmin(ctx context.Context, email string) (*User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	existing.Role = domain.RoleAdmin
	return existing, nil
}
