package admin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dreamdecol/database"
	"dreamdecol/models"
	"dreamdecol/services/settings"
	"dreamdecol/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{users: map[primitive.ObjectID]models.AdminUser{}}
}

func (f *fakeAdminRepo) usernameTakenLocked(u *models.AdminUser) bool {
	for id, other := range f.users {
		if id != u.ID && other.Username == u.Username {
			return true
		}
	}
	return false
}

func (f *fakeAdminRepo) Create(_ context.Context, u *models.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if f.usernameTakenLocked(u) {
		return database.ErrDuplicate
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeAdminRepo) List(context.Context) ([]models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdminUser
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeAdminRepo) Replace(_ context.Context, u *models.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return database.ErrNotFound
	}
	if f.usernameTakenLocked(u) {
		return database.ErrDuplicate
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeAdminRepo) CountByRole(_ context.Context, role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeAdminRepo) EnsureIndexes(context.Context) error { return nil }

type memoryCache struct {
	mu       sync.Mutex
	sessions map[string]utils.AdminSession
	revoked  map[string]bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{sessions: map[string]utils.AdminSession{}, revoked: map[string]bool{}}
}

func (m *memoryCache) Get(_ context.Context, id string) (*utils.AdminSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memoryCache) Save(_ context.Context, s utils.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryCache) Invalidate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memoryCache) Revoke(_ context.Context, hash string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[hash] = true
	return nil
}

func (m *memoryCache) IsRevoked(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[hash], nil
}

func init() {
	utils.Logger = zap.NewNop()
}

func newTestService() (*DefaultAdminService, *fakeAdminRepo, *memoryCache) {
	repo := newFakeAdminRepo()
	cache := newMemoryCache()
	svc := NewAdminService(repo, cache, settings.Static{S: settings.DefaultSnapshot()}, "test-secret", time.Hour)
	svc.HashCost = bcrypt.MinCost
	return svc, repo, cache
}

func mustRegister(t *testing.T, svc *DefaultAdminService, username, role string) *models.AdminUser {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{Username: username, Password: "secret123", Role: role})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

func kindOf(err error) utils.ErrorKind {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return -1
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	u := mustRegister(t, svc, "amani", models.RoleAdmin)

	resp, err := svc.Login(ctx, "amani", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.ID != u.ID.Hex() || resp.User.Role != models.RoleAdmin {
		t.Errorf("login user = %+v", resp.User)
	}

	id, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id.Username != "amani" {
		t.Errorf("identity = %+v", id)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	u := mustRegister(t, svc, "keza", "")

	if u.Role != models.DefaultAdminRole {
		t.Errorf("default role = %s", u.Role)
	}
	if _, err := svc.Login(ctx, "keza", "wrong-pass"); kindOf(err) != utils.KindValidation {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "secret123"); kindOf(err) != utils.KindValidation {
		t.Errorf("unknown user: %v", err)
	}

	stored := repo.users[u.ID]
	stored.IsActive = false
	repo.users[u.ID] = stored
	if _, err := svc.Login(ctx, "keza", "secret123"); kindOf(err) != utils.KindForbidden {
		t.Errorf("inactive user: %v", err)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	u := mustRegister(t, svc, "mugisha", models.RoleModerator)

	expired, _, err := utils.GenerateToken(svc.Secret, u.ID.Hex(), u.Username, u.Role, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	foreign, _, err := utils.GenerateToken([]byte("other-secret"), u.ID.Hex(), u.Username, u.Role, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	ghost, _, err := utils.GenerateToken(svc.Secret, primitive.NewObjectID().Hex(), "ghost", models.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"expired":   expired,
		"signature": foreign,
		"no user":   ghost,
	} {
		if _, err := svc.Authenticate(ctx, token); kindOf(err) != utils.KindUnauthorized {
			t.Errorf("%s: got %v, want unauthorized", name, err)
		}
	}

	good, _, _ := utils.GenerateToken(svc.Secret, u.ID.Hex(), u.Username, u.Role, time.Hour)
	stored := repo.users[u.ID]
	stored.IsActive = false
	repo.users[u.ID] = stored
	if _, err := svc.Authenticate(ctx, good); kindOf(err) != utils.KindUnauthorized {
		t.Errorf("inactive: got %v, want unauthorized", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "ineza", models.RoleAdmin)

	resp, err := svc.Login(ctx, "ineza", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, resp.Token); kindOf(err) != utils.KindUnauthorized {
		t.Errorf("revoked token accepted: %v", err)
	}
}

func TestRoleChangesApplyToLiveTokens(t *testing.T) {
	svc, _, cache := newTestService()
	ctx := context.Background()
	root := mustRegister(t, svc, "root", models.RoleSuperAdmin)
	u := mustRegister(t, svc, "gasana", models.RoleAdmin)

	resp, _ := svc.Login(ctx, "gasana", "secret123")
	if _, err := svc.Authenticate(ctx, resp.Token); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.sessions[u.ID.Hex()]; !ok {
		t.Fatal("identity was not cached")
	}

	moderator := models.RoleModerator
	actor := Identity{ID: root.ID.Hex(), Username: root.Username, Role: root.Role}
	if _, err := svc.Update(ctx, actor, u.ID.Hex(), models.AdminUserUpdate{Role: &moderator}); err != nil {
		t.Fatalf("update: %v", err)
	}
	id, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatal(err)
	}
	if id.Role != models.RoleModerator {
		t.Errorf("role after demotion = %s", id.Role)
	}
}

func TestOnlySuperadminChangesRoles(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	a := mustRegister(t, svc, "admin1", models.RoleAdmin)
	b := mustRegister(t, svc, "admin2", models.RoleModerator)

	promote := models.RoleSuperAdmin
	actor := Identity{ID: a.ID.Hex(), Username: a.Username, Role: a.Role}
	if _, err := svc.Update(ctx, actor, b.ID.Hex(), models.AdminUserUpdate{Role: &promote}); kindOf(err) != utils.KindForbidden {
		t.Errorf("admin promoting: %v", err)
	}

	active := false
	updated, err := svc.Update(ctx, actor, b.ID.Hex(), models.AdminUserUpdate{IsActive: &active})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsActive {
		t.Error("isActive not applied")
	}
}

func TestPasswordUpdateIsHashed(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	u := mustRegister(t, svc, "uwera", models.RoleAdmin)

	pw := "n3w-password"
	actor := Identity{ID: u.ID.Hex(), Role: models.RoleAdmin}
	if _, err := svc.Update(ctx, actor, u.ID.Hex(), models.AdminUserUpdate{Password: &pw}); err != nil {
		t.Fatal(err)
	}
	if repo.users[u.ID].PasswordHash == pw {
		t.Fatal("password stored in clear text")
	}
	if _, err := svc.Login(ctx, "uwera", pw); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "taken", models.RoleAdmin)

	cases := []RegisterInput{
		{Username: "ab", Password: "secret123"},
		{Username: "valid", Password: "123"},
		{Username: "valid", Password: "secret123", Role: "owner"},
		{Username: "taken", Password: "secret123"},
	}
	for _, in := range cases {
		if _, err := svc.Register(ctx, in); kindOf(err) != utils.KindValidation {
			t.Errorf("Register(%+v) = %v, want validation", in, err)
		}
	}
}

func TestDeleteRules(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	a := mustRegister(t, svc, "first", models.RoleSuperAdmin)
	b := mustRegister(t, svc, "second", models.RoleAdmin)
	actor := Identity{ID: a.ID.Hex(), Role: a.Role}

	if err := svc.Delete(ctx, actor, a.ID.Hex()); kindOf(err) != utils.KindValidation {
		t.Errorf("self delete: %v", err)
	}
	if err := svc.Delete(ctx, actor, b.ID.Hex()); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := svc.Delete(ctx, actor, b.ID.Hex()); kindOf(err) != utils.KindNotFound {
		t.Errorf("second delete: %v", err)
	}
}

func TestAdminCannotTouchSuperadmin(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	root := mustRegister(t, svc, "rootadmin", models.RoleSuperAdmin)
	ops := mustRegister(t, svc, "ops", models.RoleAdmin)
	actor := Identity{ID: ops.ID.Hex(), Username: ops.Username, Role: ops.Role}

	pw := "hijacked1"
	name := "renamed"
	inactive := false
	updates := []models.AdminUserUpdate{
		{Password: &pw},
		{Username: &name},
		{IsActive: &inactive},
	}
	for _, upd := range updates {
		if _, err := svc.Update(ctx, actor, root.ID.Hex(), upd); kindOf(err) != utils.KindForbidden {
			t.Errorf("Update(%+v) = %v, want forbidden", upd, err)
		}
	}
	if _, err := svc.Login(ctx, "rootadmin", pw); err == nil {
		t.Error("password of the superadmin was changed")
	}
	if err := svc.Delete(ctx, actor, root.ID.Hex()); kindOf(err) != utils.KindForbidden {
		t.Errorf("Delete = %v, want forbidden", err)
	}
	if _, ok := repo.users[root.ID]; !ok {
		t.Error("superadmin was deleted")
	}

	peer := mustRegister(t, svc, "peer", models.RoleAdmin)
	if err := svc.Delete(ctx, actor, peer.ID.Hex()); err != nil {
		t.Errorf("deleting an equal rank: %v", err)
	}
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx, "owner", "owner-pass")
	if err != nil || !created {
		t.Fatalf("first bootstrap = %v, %v", created, err)
	}
	created, err = svc.EnsureBootstrapAdmin(ctx, "owner2", "owner-pass")
	if err != nil || created {
		t.Fatalf("second bootstrap = %v, %v", created, err)
	}
	if created, _ := svc.EnsureBootstrapAdmin(ctx, "", ""); created {
		t.Error("bootstrap without credentials")
	}
}
