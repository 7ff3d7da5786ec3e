package session

import (
	"net/http"

	"dairysync/internal/ports/auth"
)

// Writer abre y cierra sesiones sobre la respuesta HTTP (token en cookie).
type Writer struct {
	Manager *Manager
	Cookie  Cookie
}

func (s Writer) Start(w http.ResponseWriter, r *http.Request, c auth.Claims) error {
	tok, exp, err := s.Manager.Issue(r.Context(), c)
	if err != nil {
		return err
	}
	s.Cookie.Set(w, tok, exp)
	return nil
}

func (s Writer) End(w http.ResponseWriter, _ *http.Request) {
	s.Cookie.Clear(w)
}
