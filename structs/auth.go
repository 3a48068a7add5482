package structs

import (
	"time"

	"github.com/google/uuid"
)

type AuthClaims struct {
	Email string
	Role  string
	Iat   time.Time
	Exp   time.Time
	Jti   uuid.UUID
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
