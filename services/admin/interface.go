package admin

import (
	"context"
	"time"

	adminRepo "dreamdecol/database/repository/admin"
	"dreamdecol/models"
	"dreamdecol/services/settings"

	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	// Authentication
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
	Logout(ctx context.Context, token string) error

	// User management
	Register(ctx context.Context, input RegisterInput) (*models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	Get(ctx context.Context, id string) (*models.AdminUser, error)
	Update(ctx context.Context, actor Identity, id string, upd models.AdminUserUpdate) (*models.AdminUser, error)
	Delete(ctx context.Context, actor Identity, id string) error

	// EnsureBootstrapAdmin creates the first superadmin when none exists.
	EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error)
}

// Identity is the authenticated admin attached to a request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Identity  `json:"user"`
}

type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo     adminRepo.AdminRepository
	Cache    SessionCache
	Settings settings.Provider
	Secret   []byte
	TokenTTL time.Duration
	HashCost int
	Now      func() time.Time
}

func NewAdminService(repo adminRepo.AdminRepository, cache SessionCache, provider settings.Provider, secret string, ttl time.Duration) *DefaultAdminService {
	if cache == nil {
		cache = NoopSessionCache{}
	}
	return &DefaultAdminService{
		Repo:     repo,
		Cache:    cache,
		Settings: provider,
		Secret:   []byte(secret),
		TokenTTL: ttl,
		HashCost: bcrypt.DefaultCost,
		Now:      time.Now,
	}
}
