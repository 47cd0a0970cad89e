package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/csu-mims/inventory-backend/pkg/auth"
	"github.com/csu-mims/inventory-backend/pkg/auth/session"
	"github.com/csu-mims/inventory-backend/pkg/config"
	"github.com/csu-mims/inventory-backend/pkg/db/models"
	"github.com/csu-mims/inventory-backend/pkg/enums"
	pkgerrors "github.com/csu-mims/inventory-backend/pkg/errors"
	"github.com/csu-mims/inventory-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "mims",
		ExpirationMinutes: 30,
	}
}

func TestServiceLogin(t *testing.T) {
	password := "staff-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, password),
		FirstName:    "Staff",
		LastName:     "User",
		SystemRole:   enums.SystemRoleStaff,
		IsActive:     true,
	}
	cfg := testJWTConfig()

	svc, _ := buildTestService(t, user, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.SystemRoleStaff {
		t.Fatalf("role claim = %s", claims.Role)
	}
	if claims.UserID != user.ID {
		t.Fatalf("user claim = %s", claims.UserID)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("refresh token not set")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("user payload = %+v", resp.User)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login not recorded")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		SystemRole:   enums.SystemRoleStaff,
		IsActive:     true,
	}
	svc, _ := buildTestService(t, user, testJWTConfig())
	ctx := context.Background()

	cases := []LoginRequest{
		{Email: user.Email, Password: "wrong-password"},
		{Email: "unknown@example.com", Password: "right-password"},
		{Email: "", Password: "right-password"},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("%q: unexpected error %v", req.Email, err)
		}
	}
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "inactive"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: mustHashPassword(t, password),
		SystemRole:   enums.SystemRoleStaff,
		IsActive:     false,
	}
	svc, _ := buildTestService(t, user, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	password := "rotate-me"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "rotate@example.com",
		PasswordHash: mustHashPassword(t, password),
		SystemRole:   enums.SystemRoleAdmin,
		IsActive:     true,
	}
	cfg := testJWTConfig()
	svc, _ := buildTestService(t, user, cfg)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.SystemRoleAdmin {
		t.Fatalf("rotated claims = %+v", claims)
	}

	// The old session is gone; replaying the original pair fails.
	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	password := "logout-me"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "logout@example.com",
		PasswordHash: mustHashPassword(t, password),
		SystemRole:   enums.SystemRoleStaff,
		IsActive:     true,
	}
	cfg := testJWTConfig()
	svc, _ := buildTestService(t, user, cfg)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, login.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, "  "); pkgerrors.As(err) == nil {
		t.Fatalf("expected error for blank access id")
	}
}

func buildTestService(t *testing.T, user *models.User, jwtCfg config.JWTConfig) (Service, *fakeSessionManager) {
	t.Helper()
	sessions := &fakeSessionManager{tokens: map[string]string{}}
	svc, err := NewService(ServiceParams{
		UserRepo:       &fakeUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type fakeUserRepo struct {
	user *models.User
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.user != nil && f.user.ID == id {
		f.user.LastLoginAt = &at
	}
	return nil
}

type fakeSessionManager struct {
	tokens map[string]string
	seq    int
}

func (f *fakeSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	f.seq++
	token := uuid.NewString()
	f.tokens[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.tokens, oldAccessID)
	newAccessID := uuid.NewString()
	token, err := f.Generate(ctx, newAccessID)
	if err != nil {
		return "", "", err
	}
	return newAccessID, token, nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(f.tokens, accessID)
	return nil
}
