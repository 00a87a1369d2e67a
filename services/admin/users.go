package admin

import (
	"context"
	"errors"
	"strings"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgAdminNotFound = "User not found"
	MsgHigherRank    = "Not authorized to modify a higher-ranked account"
)

func (s *DefaultAdminService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *DefaultAdminService) defaultRole() string {
	role := s.Settings.Snapshot().String(settings.KeyDefaultAdminRole, models.DefaultAdminRole)
	if !models.IsValidRole(role) {
		return models.DefaultAdminRole
	}
	return role
}

func validateAccount(username, password string) error {
	var details []string
	if n := len(username); n < 3 || n > 30 {
		details = append(details, "Username must be between 3 and 30 characters")
	}
	if len(password) < 6 {
		details = append(details, "Password must be at least 6 characters")
	}
	if len(details) > 0 {
		return utils.NewValidationError("Validation failed", details...)
	}
	return nil
}

// newAdminUser hashes the password and fills role, activity and timestamps before persistence.
func (s *DefaultAdminService) newAdminUser(username, password, role string) (*models.AdminUser, error) {
	if role == "" {
		role = s.defaultRole()
	}
	if !models.IsValidRole(role) {
		return nil, utils.NewValidationError("Validation failed", "Role must be valid")
	}
	hashed, err := s.hash(password)
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	now := s.Now()
	return &models.AdminUser{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *DefaultAdminService) Register(ctx context.Context, input RegisterInput) (*models.AdminUser, error) {
	username := strings.TrimSpace(input.Username)
	if err := validateAccount(username, input.Password); err != nil {
		return nil, err
	}
	user, err := s.newAdminUser(username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewValidationError("Username already exists")
		}
		return nil, utils.NewInternalError("Server error", err)
	}
	utils.GetLogger().Info("Admin user registered", zap.String("username", user.Username), zap.String("role", user.Role))
	return user, nil
}

func (s *DefaultAdminService) List(ctx context.Context) ([]models.AdminUser, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	return users, nil
}

func (s *DefaultAdminService) lookup(ctx context.Context, id string) (*models.AdminUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotFoundError(MsgAdminNotFound)
	}
	user, err := s.Repo.GetByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError(MsgAdminNotFound)
	}
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	return user, nil
}

func (s *DefaultAdminService) Get(ctx context.Context, id string) (*models.AdminUser, error) {
	return s.lookup(ctx, id)
}

func (s *DefaultAdminService) Update(ctx context.Context, actor Identity, id string, upd models.AdminUserUpdate) (*models.AdminUser, error) {
	user, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOutranks(actor, user); err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != "" {
		username := strings.TrimSpace(*upd.Username)
		if n := len(username); n < 3 || n > 30 {
			return nil, utils.NewValidationError("Validation failed", "Username must be between 3 and 30 characters")
		}
		user.Username = username
	}
	if upd.Password != nil && *upd.Password != "" {
		if len(*upd.Password) < 6 {
			return nil, utils.NewValidationError("Validation failed", "Password must be at least 6 characters")
		}
		hashed, err := s.hash(*upd.Password)
		if err != nil {
			return nil, utils.NewInternalError("Server error", err)
		}
		user.PasswordHash = hashed
	}
	if upd.Role != nil && *upd.Role != "" && *upd.Role != user.Role {
		if !models.IsValidRole(*upd.Role) {
			return nil, utils.NewValidationError("Validation failed", "Role must be valid")
		}
		if actor.Role != models.RoleSuperAdmin {
			return nil, utils.NewForbiddenError("Not authorized as superadmin")
		}
		user.Role = *upd.Role
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	user.UpdatedAt = s.Now()

	if err := s.Repo.Replace(ctx, user); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, utils.NewValidationError("Username already exists")
		case errors.Is(err, database.ErrNotFound):
			return nil, utils.NewNotFoundError(MsgAdminNotFound)
		}
		return nil, utils.NewInternalError("Server error", err)
	}
	s.invalidate(ctx, user.ID.Hex())
	return user, nil
}

func (s *DefaultAdminService) Delete(ctx context.Context, actor Identity, id string) error {
	user, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if user.ID.Hex() == actor.ID {
		return utils.NewValidationError("You cannot delete your own account")
	}
	if err := checkOutranks(actor, user); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFoundError(MsgAdminNotFound)
		}
		return utils.NewInternalError("Server error", err)
	}
	s.invalidate(ctx, user.ID.Hex())
	return nil
}

// checkOutranks rejects changes to accounts ranked above the acting admin.
func checkOutranks(actor Identity, target *models.AdminUser) error {
	if models.RoleRank(target.Role) > models.RoleRank(actor.Role) {
		return utils.NewForbiddenError(MsgHigherRank)
	}
	return nil
}

func (s *DefaultAdminService) invalidate(ctx context.Context, id string) {
	if err := s.Cache.Invalidate(ctx, id); err != nil {
		utils.GetLogger().Warn("Failed to drop cached admin session", zap.String("id", id), zap.Error(err))
	}
}

func (s *DefaultAdminService) EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	n, err := s.Repo.CountByRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Register(ctx, RegisterInput{Username: username, Password: password, Role: models.RoleSuperAdmin}); err != nil {
		return false, err
	}
	return true, nil
}
