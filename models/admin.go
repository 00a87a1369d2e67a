package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles, most privileged first.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

var AdminRoles = []string{RoleSuperAdmin, RoleAdmin, RoleModerator}

const DefaultAdminRole = RoleAdmin

// RoleRank orders roles by privilege; unknown roles rank zero.
func RoleRank(role string) int {
	switch role {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	default:
		return 0
	}
}

// IsValidRole reports whether role is one of AdminRoles.
func IsValidRole(role string) bool {
	return RoleRank(role) > 0
}

// AdminUser is a back-office account. PasswordHash is never serialized to JSON.
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AdminUserUpdate carries the optional fields of an admin account update.
type AdminUserUpdate struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=30"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=superadmin admin moderator"`
	IsActive *bool   `json:"isActive"`
}
