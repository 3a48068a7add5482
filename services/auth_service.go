package services

import (
	"fmt"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

// AuthService authenticates the single operator account configured
// through the environment. There is no user table; the admin surface is
// a back office, not a public login.
type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// Login verifies the operator credentials and issues an access token.
// Every failure maps to the same invalid-credentials error so the
// response never reveals whether the email matched.
func (as *AuthService) Login(req *structs.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", lib.ErrValidation)
	}

	if as.cfg.Auth.AdminPasswordHash == "" {
		as.logger.Error("Login attempted with no operator password configured")
		return "", lib.ErrInvalidCredentials
	}

	if req.Email != as.cfg.Auth.AdminEmail {
		as.logger.Debug("Login attempt for unknown operator", gecho.Field("email", req.Email))
		return "", lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, as.cfg.Auth.AdminPasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify operator password hash", gecho.Field("error", err))
		return "", lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Login attempt with wrong password", gecho.Field("email", req.Email))
		return "", lib.ErrInvalidCredentials
	}

	token, err := lib.GenerateToken(req.Email, "admin", as.cfg.Auth.AccessTokenSecret, as.cfg.Auth.AccessTokenExpiry)
	if err != nil {
		as.logger.Error("Failed to generate access token", gecho.Field("error", err))
		return "", err
	}

	as.logger.Info("Operator logged in", gecho.Field("email", req.Email))
	return token, nil
}

// ValidateToken parses a raw access token and returns its claims.
func (as *AuthService) ValidateToken(tokenStr string) (*structs.AuthClaims, error) {
	return lib.ParseToken(tokenStr, as.cfg.Auth.AccessTokenSecret)
}

// AccessTokenExpiry exposes the configured token lifetime for cookie
// expiration.
func (as *AuthService) AccessTokenExpiry() time.Duration {
	return as.cfg.Auth.AccessTokenExpiry
}
