package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgNoToken            = "Not authorized, no token"
	MsgTokenFailed        = "Not authorized, token failed"
	MsgUserNotFound       = "Not authorized, user not found"
	MsgInactive           = "User account is inactive"
)

func identityOf(u *models.AdminUser) Identity {
	return Identity{ID: u.ID.Hex(), Username: u.Username, Role: u.Role}
}

func (s *DefaultAdminService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, utils.NewValidationError("Validation failed", "Username is required", "Password is required")
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewValidationError(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewValidationError(MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, utils.NewForbiddenError("Account is inactive")
	}

	token, expiresAt, err := utils.GenerateToken(s.Secret, user.ID.Hex(), user.Username, user.Role, s.TokenTTL)
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	utils.GetLogger().Info("Admin logged in", zap.String("username", user.Username), zap.String("role", user.Role))
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: identityOf(user)}, nil
}

// Authenticate verifies a bearer token and resolves the admin behind it.
// The role comes from the stored account, so demotions apply to live tokens.
func (s *DefaultAdminService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, utils.NewUnauthorizedError(MsgNoToken)
	}
	claims, err := utils.ValidateToken(s.Secret, token)
	if err != nil {
		return nil, utils.NewUnauthorizedError(MsgTokenFailed)
	}

	revoked, err := s.Cache.IsRevoked(ctx, utils.HashToken(token))
	if err != nil {
		utils.GetLogger().Warn("Token denylist unavailable", zap.Error(err))
	}
	if revoked {
		return nil, utils.NewUnauthorizedError(MsgTokenFailed)
	}

	if cached, err := s.Cache.Get(ctx, claims.ID); err == nil && cached != nil && cached.IsActive {
		return &Identity{ID: cached.ID, Username: cached.Username, Role: cached.Role}, nil
	}

	oid, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, utils.NewUnauthorizedError(MsgTokenFailed)
	}
	user, err := s.Repo.GetByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewUnauthorizedError(MsgUserNotFound)
	}
	if err != nil {
		return nil, utils.NewInternalError("Server error", err)
	}
	if !user.IsActive {
		return nil, utils.NewUnauthorizedError(MsgInactive)
	}

	id := identityOf(user)
	session := utils.AdminSession{ID: id.ID, Username: id.Username, Role: id.Role, IsActive: true}
	if err := s.Cache.Save(ctx, session); err != nil {
		utils.GetLogger().Warn("Failed to cache admin session", zap.Error(err))
	}
	return &id, nil
}

// Logout denylists the token until it expires.
func (s *DefaultAdminService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(s.Secret, token)
	if err != nil {
		return utils.NewUnauthorizedError(MsgTokenFailed)
	}
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if err := s.Cache.Revoke(ctx, utils.HashToken(token), ttl); err != nil {
		return utils.NewInternalError("Server error", err)
	}
	return nil
}
