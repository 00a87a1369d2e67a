package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dreamdecol/handlers"
	"dreamdecol/models"
	"dreamdecol/services/admin"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	utils.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
}

type tokenRoles map[string]string

func (t tokenRoles) Authenticate(_ context.Context, token string) (*admin.Identity, error) {
	role, ok := t[token]
	if !ok {
		return nil, utils.NewUnauthorizedError(admin.MsgTokenFailed)
	}
	return &admin.Identity{ID: "1", Username: role, Role: role}, nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	hb := &handlers.HandlerBundle{
		Auth: tokenRoles{
			"mod":   models.RoleModerator,
			"admin": models.RoleAdmin,
		},
		Booking:  handlers.NewBookingHandler(nil),
		Rating:   handlers.NewRatingHandler(nil),
		Admin:    handlers.NewAdminHandler(nil),
		Product:  handlers.NewProductHandler(nil),
		Activity: handlers.NewActivityHandler(nil),
		Contact:  handlers.NewContactHandler(nil),
		Config:   handlers.NewConfigHandler(nil),
		Upload:   handlers.NewUploadHandler(nil),
		Health:   handlers.NewHealthHandler(nil),
	}
	r := gin.New()
	RegisterRoutes(r, hb, Options{AllowedOrigins: []string{"*"}})
	return r
}

func TestRouteGuards(t *testing.T) {
	r := newRouter(t)
	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"index", http.MethodGet, "/api", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nothing/here", "", http.StatusNotFound},
		{"admin products without token", http.MethodGet, "/api/products/admin", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/contact/admin", "forged", http.StatusUnauthorized},
		{"moderator on admin route", http.MethodDelete, "/api/contact/admin/abc", "mod", http.StatusForbidden},
		{"moderator on superadmin route", http.MethodPost, "/api/admin/auth/register", "mod", http.StatusForbidden},
		{"admin on superadmin route", http.MethodPost, "/api/config/reset", "admin", http.StatusForbidden},
		{"availability needs date", http.MethodGet, "/api/booking/availability", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("%s %s: got %d, want %d (%s)", tc.method, tc.path, w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestCORSConfig(t *testing.T) {
	if cfg := corsConfig(nil); !cfg.AllowAllOrigins {
		t.Error("empty origin list should allow all")
	}
	cfg := corsConfig([]string{"https://dreamdecol.com"})
	if cfg.AllowAllOrigins || !cfg.AllowCredentials || len(cfg.AllowOrigins) != 1 {
		t.Errorf("explicit origins: %+v", cfg)
	}
}
