package auth

import (
	"net/http"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if body.Email == "" || body.Password == "" {
		ar.logger.Warn("Missing required fields in login")
		gecho.BadRequest(w, gecho.WithMessage("Email and password are required"), gecho.Send())
		return
	}

	accessToken, err := ar.authService.Login(body)
	if err != nil {
		ar.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, time.Now().Add(ar.authService.AccessTokenExpiry()), w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(map[string]any{"access_token": accessToken}),
		gecho.Send(),
	)
}
