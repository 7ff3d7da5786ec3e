package session

import (
	"net/http"
	"strings"
	"time"
)

// Cookie configura la cookie que transporta el token de sesión.
type Cookie struct {
	Name   string
	Secure bool
}

func (c Cookie) name() string {
	if strings.TrimSpace(c.Name) == "" {
		return "dairysync_session"
	}
	return c.Name
}

func (c Cookie) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Secure,
		Expires:  expiresAt,
	})
}

func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Secure,
		MaxAge:   -1,
	})
}

// Token lee el token desde la cookie; vacío si no hay.
func (c Cookie) Token(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(ck.Value)
}
