package auth

import (
	"net/http"
	"ravvio_server/lib"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	lib.ClearCookie(lib.AccessCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out"),
		gecho.Send(),
	)
}
