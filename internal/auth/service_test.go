package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/mercaline/mercaline-backend/pkg/auth"
	"github.com/mercaline/mercaline-backend/pkg/config"
	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/security"
)

type stubUserRepo struct {
	user       *models.User
	lastLogins []time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogins = append(s.lastLogins, at)
	return nil
}

type stubSessionManager struct {
	created []string
	revoked []string
}

func (s *stubSessionManager) Create(ctx context.Context, accessID string, userID uuid.UUID) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "mercaline",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hashed
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func TestServiceLoginIssuesTokenAndSession(t *testing.T) {
	password := "shopper-secret"
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Shopper",
		Email:        "shopper@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleUser,
		IsActive:     true,
	}

	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Shopper@example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.UserRoleUser {
		t.Fatalf("expected user role claim, got %s", claims.Role)
	}
	if len(sessions.created) != 1 || sessions.created[0] != claims.ID {
		t.Fatalf("expected session keyed by jti %s, got %v", claims.ID, sessions.created)
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("expected user profile in response, got %+v", resp.User)
	}
	if user.LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "shopper@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		Role:         enums.UserRoleUser,
		IsActive:     true,
	}
	svc, _ := buildTestService(t, user)

	cases := []LoginRequest{
		{Email: "shopper@example.com", Password: "wrong-password"},
		{Email: "unknown@example.com", Password: "right-password"},
		{Email: "", Password: "right-password"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %q, got %v", req.Email, err)
		}
	}
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "inactive-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleUser,
		IsActive:     false,
	}
	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestServiceAdminLoginRequiresAdminRole(t *testing.T) {
	password := "user-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "shopper@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleUser,
		IsActive:     true,
	}
	svc, _ := buildTestService(t, user)

	_, err := svc.AdminLogin(context.Background(), LoginRequest{Email: user.Email, Password: password})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for non-admin, got %v", err)
	}

	admin := &models.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleAdmin,
		IsActive:     true,
	}
	svc, _ = buildTestService(t, admin)

	resp, err := svc.AdminLogin(context.Background(), LoginRequest{Email: admin.Email, Password: password})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, sessions := buildTestService(t, nil)

	if err := svc.Logout(context.Background(), "access-id-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id-1" {
		t.Fatalf("expected session revoked, got %v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for empty access id, got %v", err)
	}
}
