package accounts

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dairysync/internal/platform/logger"
	"dairysync/internal/platform/web"
	"dairysync/internal/ports/auth"
	"dairysync/internal/ports/capabilities"
)

// SessionWriter abre/cierra la sesión en la respuesta (cookie).
type SessionWriter interface {
	Start(w http.ResponseWriter, r *http.Request, c auth.Claims) error
	End(w http.ResponseWriter, r *http.Request)
}

// CapabilityResolver es lo único que el login necesita del resolver.
type CapabilityResolver interface {
	Resolve(ctx context.Context, role string) ([]capabilities.Capability, error)
}

func RegisterRoutes(r chi.Router, svc *Service, sessions SessionWriter, caps CapabilityResolver, log logger.Logger) {
	h := &handler{svc: svc, sessions: sessions, caps: caps, log: log}

	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Get("/logout", h.logout)
}

type handler struct {
	svc      *Service
	sessions SessionWriter
	caps     CapabilityResolver
	log      logger.Logger
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	FarmName  string    `json:"farm_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Message    string       `json:"message"`
	RedirectTo string       `json:"redirect_to"`
	User       userResponse `json:"user"`
}

var passwordFields = []string{"password", "password1", "password2"}

func (h *handler) loginForm(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, map[string]any{
		"form": "login",
		"next": web.LocalPath(r.URL.Query().Get("next")),
	})
}

// login godoc
// @Summary Iniciar sesión
// @Description Valida email + password y deja la sesión en una cookie HttpOnly. redirect_to depende del rol (vet => /vet-dashboard).
// @Tags accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param next query string false "Ruta a la que volver tras el login"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} web.ErrorBody
// @Failure 401 {object} web.ErrorBody "Invalid email or password."
// @Router /login [post]
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	form, err := web.ReadForm(r)
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Authenticate(r.Context(), form.Get("email"), form.Get("password"))
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			web.WriteFormError(w, http.StatusUnauthorized, MsgBadCredentials, []string{MsgBadCredentials}, form, passwordFields...)
			return
		}
		h.log.Error("login failed", map[string]any{"error": err})
		web.WriteFormError(w, http.StatusInternalServerError, "Login error: "+err.Error(), nil, form, passwordFields...)
		return
	}

	if err := h.startSession(w, r, p); err != nil {
		h.log.Error("start session failed", map[string]any{"error": err, "user_id": p.Account.ID})
		web.WriteError(w, http.StatusInternalServerError, "Login error: "+err.Error())
		return
	}

	next := web.LocalPath(r.URL.Query().Get("next"))
	if next == "" {
		next = web.LocalPath(form.Get("next"))
	}
	if next == "" {
		next = homeFor(p.Profile.Role)
	}

	web.WriteJSON(w, http.StatusOK, sessionResponse{
		Message:    "Welcome back, " + p.Account.FirstName + "!",
		RedirectTo: next,
		User:       toUserResponse(p),
	})
}

func (h *handler) registerForm(w http.ResponseWriter, _ *http.Request) {
	web.WriteJSON(w, http.StatusOK, map[string]any{
		"form":  "register",
		"roles": []Role{RoleFarmer, RoleVet},
	})
}

// register godoc
// @Summary Registrar cuenta
// @Description Crea cuenta + perfil (farmer o vet). Devuelve todos los errores de validación juntos y los valores enviados (sin passwords).
// @Tags accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} sessionResponse
// @Failure 400 {object} web.ErrorBody
// @Router /register [post]
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	form, err := web.ReadForm(r)
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Register(r.Context(), RegisterInput{
		FullName:  form.Get("fullname"),
		Email:     form.Get("email"),
		Phone:     form.Get("phone"),
		Farm:      form.Get("farm"),
		Role:      form.Get("role"),
		Password1: form.Get("password1"),
		Password2: form.Get("password2"),
		Terms:     checked(form.Get("terms")),
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			web.WriteFormError(w, http.StatusBadRequest, "invalid registration", verr.Messages, form, passwordFields...)
			return
		}
		h.log.Error("register failed", map[string]any{"error": err})
		web.WriteFormError(w, http.StatusInternalServerError, "Error creating account: "+err.Error(), nil, form, passwordFields...)
		return
	}

	// Login automático tras el alta.
	if err := h.startSession(w, r, p); err != nil {
		h.log.Warn("auto login after register failed", map[string]any{"error": err, "user_id": p.Account.ID})
	}

	web.WriteJSON(w, http.StatusCreated, sessionResponse{
		Message:    "Welcome to DairySync, " + p.Account.FirstName + "! Your account has been created successfully.",
		RedirectTo: "/login",
		User:       toUserResponse(p),
	})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w, r)
	web.WriteJSON(w, http.StatusOK, web.MessageBody{
		Message:    "You have been logged out successfully.",
		RedirectTo: "/login",
	})
}

// startSession resuelve rol y capabilities una sola vez y los deja en el token.
func (h *handler) startSession(w http.ResponseWriter, r *http.Request, p Principal) error {
	caps, err := h.caps.Resolve(r.Context(), string(p.Profile.Role))
	if err != nil {
		return err
	}
	return h.sessions.Start(w, r, auth.Claims{
		UserID:       p.Account.ID,
		Email:        p.Account.Email,
		Name:         p.Account.FullName(),
		UserRole:     string(p.Profile.Role),
		Capabilities: caps,
	})
}

func homeFor(role Role) string {
	if role == RoleVet {
		return "/vet-dashboard"
	}
	return "/animal_listing"
}

// checked: un checkbox marcado manda cualquier valor no vacío ("on" por defecto).
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "off", "no":
		return false
	}
	return true
}

func toUserResponse(p Principal) userResponse {
	return userResponse{
		ID:        p.Account.ID,
		Email:     p.Account.Email,
		Username:  p.Account.Username,
		FullName:  p.Account.FullName(),
		Phone:     p.Profile.Phone,
		FarmName:  p.Profile.FarmName,
		Role:      p.Profile.Role,
		CreatedAt: p.Account.CreatedAt,
	}
}
