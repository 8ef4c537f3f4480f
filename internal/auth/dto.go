package auth

import "github.com/mercaline/mercaline-backend/internal/users"

// LoginRequest carries the credentials for storefront and admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the minted token alongside the user profile.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// OTPChallenge is the issued reset code. The code rides in the response
// because no mail transport is configured for this deployment.
type OTPChallenge struct {
	Email            string `json:"email"`
	OTP              string `json:"otp"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// ResetToken is the one-time credential handed out after OTP verification.
type ResetToken struct {
	Email         string `json:"email"`
	SecurityToken string `json:"security_token"`
}

// ResetPasswordRequest completes the reset flow.
type ResetPasswordRequest struct {
	Email         string `json:"email"`
	SecurityToken string `json:"security_token"`
	NewPassword   string `json:"new_password"`
}
