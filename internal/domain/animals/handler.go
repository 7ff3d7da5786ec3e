package animals

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairysync/internal/middleware"
	"dairysync/internal/platform/logger"
	"dairysync/internal/platform/web"
	"dairysync/internal/ports/capabilities"
)

// AnimalLogs evita importar dailylogs (rompe ciclos): el detalle del animal
// muestra sus logs ya serializados.
type AnimalLogs interface {
	AnimalLogs(ctx context.Context, animalID string) (any, error)
}

func RegisterRoutes(r chi.Router, svc *Service, logs AnimalLogs, log logger.Logger) {
	manage := r.With(middleware.RequireSession, middleware.RequireCapability(capabilities.AnimalsManage))

	r.Get("/animal_listing", listAnimalsHandler(svc, log))
	r.Get("/animal_registration", registrationFormHandler())
	manage.Post("/animal_registration", registerAnimalHandler(svc, log))

	r.Get("/animal/{animalID}", animalDetailHandler(svc, logs, log))
	manage.Post("/animal/{animalID}/delete", deleteAnimalHandler(svc, log))
}

// Response es la forma JSON de un animal.
type Response struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Species      string       `json:"species"`
	Breed        string       `json:"breed"`
	Gender       Gender       `json:"gender"`
	HealthStatus HealthStatus `json:"health_status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type animalDetailResponse struct {
	Animal Response `json:"animal"`
	Logs   any      `json:"daily_logs"`
}

type registeredResponse struct {
	Message    string   `json:"message"`
	RedirectTo string   `json:"redirect_to"`
	Animal     Response `json:"animal"`
}

func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list animals", map[string]any{"error": err})
			web.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]Response, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{"animals": out})
	}
}

func registrationFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"form":            "animal_registration",
			"genders":         []Gender{GenderMale, GenderFemale},
			"health_statuses": []HealthStatus{HealthHealthy, HealthSick, HealthRecovering, HealthUnknown},
		})
	}
}

// registerAnimalHandler godoc
// @Summary Registrar animal
// @Tags animals
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} registeredResponse
// @Failure 400 {object} web.ErrorBody
// @Failure 401 {object} web.ErrorBody
// @Failure 403 {object} web.ErrorBody
// @Router /animal_registration [post]
func registerAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := web.ReadForm(r)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		a, err := svc.Register(r.Context(), RegisterInput{
			Name:         form.Get("name"),
			Species:      form.Get("species"),
			Breed:        form.Get("breed"),
			Gender:       form.Get("gender"),
			HealthStatus: form.Get("health_status"),
		})
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				web.WriteFormError(w, http.StatusBadRequest, "invalid animal", verr.Messages, form)
				return
			}
			log.Error("register animal", map[string]any{"error": err})
			web.WriteFormError(w, http.StatusInternalServerError, "Error saving animal: "+err.Error(), nil, form)
			return
		}

		web.WriteJSON(w, http.StatusCreated, registeredResponse{
			Message:    "Animal has been successfully registered",
			RedirectTo: "/animal_listing",
			Animal:     ToResponse(a),
		})
	}
}

func animalDetailHandler(svc *Service, logs AnimalLogs, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				web.WriteJSON(w, http.StatusNotFound, web.ErrorBody{Error: "Animal not found."})
				return
			}
			log.Error("get animal", map[string]any{"error": err})
			web.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		items, err := logs.AnimalLogs(r.Context(), a.ID)
		if err != nil {
			log.Error("list animal logs", map[string]any{"error": err, "animal_id": a.ID})
			web.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		web.WriteJSON(w, http.StatusOK, animalDetailResponse{
			Animal: ToResponse(a),
			Logs:   items,
		})
	}
}

func deleteAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := svc.Delete(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				web.WriteJSON(w, http.StatusNotFound, web.ErrorBody{Error: "Animal not found."})
				return
			}
			log.Error("delete animal", map[string]any{"error": err})
			web.WriteError(w, http.StatusInternalServerError, "Error deleting animal: "+err.Error())
			return
		}

		web.WriteJSON(w, http.StatusOK, web.MessageBody{
			Message:    name + " has been successfully deleted.",
			RedirectTo: "/animal_listing",
		})
	}
}

// ToResponse es público porque dailylogs y health embeben el animal en sus respuestas.
func ToResponse(a Animal) Response {
	return Response{
		ID:           a.ID,
		Name:         a.Name,
		Species:      a.Species,
		Breed:        a.Breed,
		Gender:       a.Gender,
		HealthStatus: a.HealthStatus,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
