package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mercaline/mercaline-backend/pkg/config"
	"github.com/mercaline/mercaline-backend/pkg/db/models"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/security"
)

const (
	otpTTL        = 10 * time.Minute
	resetTokenTTL = 10 * time.Minute

	invalidOTPMessage        = "invalid or expired otp"
	invalidResetTokenMessage = "invalid or expired security token"
)

// PasswordResetService drives the OTP-gated password reset flow: request a
// code, trade the code for a short-lived security token, then reset with it.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) (*OTPChallenge, error)
	VerifyResetOTP(ctx context.Context, email, code string) (*ResetToken, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type otpKeyer interface {
	PasswordOTPKey(email string) string
	PasswordResetTokenKey(email string) string
}

type passwordResetUsers interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type passwordResetService struct {
	users       passwordResetUsers
	store       otpStore
	keyer       otpKeyer
	passwordCfg config.PasswordConfig
}

// PasswordResetParams bundles the dependencies for the reset flow.
type PasswordResetParams struct {
	Users          passwordResetUsers
	Store          otpStore
	Keyer          otpKeyer
	PasswordConfig config.PasswordConfig
}

// NewPasswordResetService builds the OTP reset service.
func NewPasswordResetService(params PasswordResetParams) (PasswordResetService, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Store == nil || params.Keyer == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	return &passwordResetService{
		users:       params.Users,
		store:       params.Store,
		keyer:       params.Keyer,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// RequestReset issues a five-digit code with a ten-minute window. The code is
// returned to the caller; there is no mail transport in this deployment.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) (*OTPChallenge, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if _, err := s.lookupUser(ctx, normalized); err != nil {
		return nil, err
	}

	code, err := newOTPCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	if err := s.store.Set(ctx, s.keyer.PasswordOTPKey(normalized), code, otpTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}

	return &OTPChallenge{
		Email:            normalized,
		OTP:              code,
		ExpiresInSeconds: int(otpTTL.Seconds()),
	}, nil
}

// VerifyResetOTP trades a valid code for a one-time security token. The code
// is consumed whether or not the caller completes the reset.
func (s *passwordResetService) VerifyResetOTP(ctx context.Context, email, code string) (*ResetToken, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "otp is required")
	}

	otpKey := s.keyer.PasswordOTPKey(normalized)
	stored, err := s.store.Get(ctx, otpKey)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidOTPMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load otp")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidOTPMessage)
	}

	token, err := newSecurityToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate security token")
	}
	if err := s.store.Set(ctx, s.keyer.PasswordResetTokenKey(normalized), token, resetTokenTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store security token")
	}
	if err := s.store.Del(ctx, otpKey); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume otp")
	}

	return &ResetToken{Email: normalized, SecurityToken: token}, nil
}

// ResetPassword replaces the user's password when the security token matches,
// then invalidates the token.
func (s *passwordResetService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	normalized, err := normalizeEmail(req.Email)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.SecurityToken) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "security token is required")
	}
	if len(req.NewPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	tokenKey := s.keyer.PasswordResetTokenKey(normalized)
	stored, err := s.store.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidResetTokenMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load security token")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.SecurityToken)) != 1 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidResetTokenMessage)
	}

	userID, err := s.lookupUser(ctx, normalized)
	if err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update password")
	}
	if err := s.store.Del(ctx, tokenKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume security token")
	}
	return nil
}

func (s *passwordResetService) lookupUser(ctx context.Context, email string) (uuid.UUID, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lookup user")
	}
	return user.ID, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return normalized, nil
}

// newOTPCode draws a uniform five-digit code.
func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()+10000), nil
}

func newSecurityToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
