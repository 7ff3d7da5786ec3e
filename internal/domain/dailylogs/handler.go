package dailylogs

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dairysync/internal/domain/animals"
	"dairysync/internal/middleware"
	"dairysync/internal/platform/logger"
	"dairysync/internal/platform/web"
	"dairysync/internal/ports/capabilities"
)

// AnimalDirectory alimenta el selector de animales de /manage-logs.
type AnimalDirectory interface {
	ListByName(ctx context.Context) ([]animals.Animal, error)
}

func RegisterRoutes(r chi.Router, svc *Service, directory AnimalDirectory, log logger.Logger) {
	session := r.With(middleware.RequireSession)
	manage := session.With(middleware.RequireCapability(capabilities.LogsManage))

	r.Get("/add_daily_log/{animalID}", addFormHandler(svc, log))
	manage.Post("/add_daily_log/{animalID}", createLogHandler(svc, log))

	r.Get("/edit_daily_log/{logID}", editFormHandler(svc, log))
	manage.Post("/edit_daily_log/{logID}", editLogHandler(svc, log))

	session.Get("/manage-logs", manageLogsHandler(svc, directory, log))
	session.Post("/delete-daily-log/{logID}", deleteLogHandler(svc, log))
	session.Post("/logs/bulk-delete", bulkDeleteHandler(svc, log))
}

type logResponse struct {
	ID         string `json:"id"`
	AnimalID   string `json:"animal_id"`
	AnimalName string `json:"animal_name,omitempty"`
	Date       string `json:"date"`

	MorningMilk   float64 `json:"morning_milk"`
	AfternoonMilk float64 `json:"afternoon_milk"`
	EveningMilk   float64 `json:"evening_milk"`
	TotalMilk     float64 `json:"total_milk"`

	FeedAmount float64 `json:"feed_amount"`
	Water      float64 `json:"water_consumption"`

	Temperature        *float64          `json:"temperature"`
	HealthObservations HealthObservation `json:"health_observations"`
	Activity           Activity          `json:"activity"`
	Notes              string            `json:"notes"`

	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type logSavedResponse struct {
	Message    string      `json:"message"`
	RedirectTo string      `json:"redirect_to"`
	Log        logResponse `json:"log"`
}

type conflictResponse struct {
	Error      string            `json:"error"`
	RedirectTo string            `json:"redirect_to"`
	FormData   map[string]string `json:"form_data,omitempty"`
}

type manageLogsResponse struct {
	Logs       []logResponse      `json:"logs"`
	AllAnimals []animals.Response `json:"all_animals"`

	AnimalFilter string `json:"animal_filter"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	HealthFilter string `json:"health_filter"`
}

type bulkDeleteResponse struct {
	Message     string   `json:"message"`
	RedirectTo  string   `json:"redirect_to"`
	Deleted     int      `json:"deleted"`
	AnimalNames []string `json:"animal_names"`
	DateFrom    *string  `json:"date_from,omitempty"`
	DateTo      *string  `json:"date_to,omitempty"`
}

func addFormHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.animals.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, log, "load animal", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"form":   "add_daily_log",
			"animal": animals.ToResponse(a),
			"date":   Day(svc.now()).Format(DateLayout),
		})
	}
}

// createLogHandler godoc
// @Summary Registrar log diario
// @Tags dailylogs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param animalID path string true "Animal ID"
// @Success 201 {object} logSavedResponse
// @Failure 400 {object} web.ErrorBody
// @Failure 404 {object} web.ErrorBody
// @Failure 409 {object} conflictResponse
// @Router /add_daily_log/{animalID} [post]
func createLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.animals.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, log, "load animal", err)
			return
		}

		form, err := web.ReadForm(r)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		in := CreateInput{}
		verr := &ValidationError{}
		if raw := strings.TrimSpace(form.Get("date")); raw != "" {
			d, err := ParseDate(raw)
			if err != nil {
				verr.add("Date must be YYYY-MM-DD.")
			}
			in.Date = d
		}
		fields, err := ParseFields(form)
		if err != nil {
			var ferr *ValidationError
			if errors.As(err, &ferr) {
				verr.Messages = append(verr.Messages, ferr.Messages...)
			}
		}
		if len(verr.Messages) > 0 {
			web.WriteFormError(w, http.StatusBadRequest, "invalid daily log", verr.Messages, form)
			return
		}
		in.Fields = fields
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			in.CreatedBy = claims.UserID
		}

		l, err := svc.Create(r.Context(), a.ID, in)
		if err != nil {
			var cerr *ConflictError
			if errors.As(err, &cerr) {
				web.WriteJSON(w, http.StatusConflict, conflictResponse{
					Error:      cerr.Error(),
					RedirectTo: "/animal/" + a.ID,
					FormData:   web.Flatten(form),
				})
				return
			}
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				web.WriteFormError(w, http.StatusBadRequest, "invalid daily log", vErr.Messages, form)
				return
			}
			writeServiceError(w, log, "create daily log", err)
			return
		}

		web.WriteJSON(w, http.StatusCreated, logSavedResponse{
			Message:    "Daily log for " + a.Name + " on " + l.Date.Format(DateLayout) + " has been added successfully.",
			RedirectTo: "/manage-logs",
			Log:        toLogResponse(Entry{Log: l, Animal: a}),
		})
	}
}

func editFormHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "logID"))
		if err != nil {
			writeServiceError(w, log, "load daily log", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"form":      "edit_daily_log",
			"animal":    animals.ToResponse(e.Animal),
			"daily_log": toLogResponse(e),
		})
	}
}

// editLogHandler godoc
// @Summary Editar log diario
// @Tags dailylogs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param logID path string true "Log ID"
// @Success 200 {object} logSavedResponse
// @Failure 400 {object} web.ErrorBody
// @Failure 404 {object} web.ErrorBody
// @Router /edit_daily_log/{logID} [post]
func editLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := web.ReadForm(r)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		fields, err := ParseFields(form)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				web.WriteFormError(w, http.StatusBadRequest, "invalid daily log", verr.Messages, form)
				return
			}
			web.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		e, err := svc.Edit(r.Context(), chi.URLParam(r, "logID"), fields)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				web.WriteFormError(w, http.StatusBadRequest, "invalid daily log", verr.Messages, form)
				return
			}
			writeServiceError(w, log, "edit daily log", err)
			return
		}

		web.WriteJSON(w, http.StatusOK, logSavedResponse{
			Message:    "Daily log has been updated successfully.",
			RedirectTo: "/animal/" + e.Animal.ID,
			Log:        toLogResponse(e),
		})
	}
}

// manageLogsHandler godoc
// @Summary Listar logs con filtros
// @Tags dailylogs
// @Produce json
// @Param animal query string false "Animal ID"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param health query string false "normal|slight_concern|needs_attention|critical"
// @Success 200 {object} manageLogsResponse
// @Failure 400 {object} web.ErrorBody
// @Router /manage-logs [get]
func manageLogsHandler(svc *Service, directory AnimalDirectory, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter, err := ParseFilter(q)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				web.WriteFormError(w, http.StatusBadRequest, "invalid filter", verr.Messages, q)
				return
			}
			web.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		entries, err := Collect(svc.List(r.Context(), filter))
		if err != nil {
			writeServiceError(w, log, "list daily logs", err)
			return
		}
		all, err := directory.ListByName(r.Context())
		if err != nil {
			writeServiceError(w, log, "list animals", err)
			return
		}

		out := manageLogsResponse{
			Logs:         toLogResponses(entries),
			AllAnimals:   make([]animals.Response, 0, len(all)),
			AnimalFilter: strings.TrimSpace(q.Get("animal")),
			DateFrom:     strings.TrimSpace(q.Get("date_from")),
			DateTo:       strings.TrimSpace(q.Get("date_to")),
			HealthFilter: strings.TrimSpace(q.Get("health")),
		}
		for _, a := range all {
			out.AllAnimals = append(out.AllAnimals, animals.ToResponse(a))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func deleteLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Delete(r.Context(), chi.URLParam(r, "logID"))
		if err != nil {
			writeServiceError(w, log, "delete daily log", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, web.MessageBody{
			Message:    "Daily log for " + d.AnimalName + " on " + d.Date.Format(DateLayout) + " has been deleted.",
			RedirectTo: "/manage-logs",
		})
	}
}

// bulkDeleteHandler godoc
// @Summary Borrado masivo de logs
// @Tags dailylogs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} bulkDeleteResponse
// @Failure 400 {object} web.ErrorBody
// @Router /logs/bulk-delete [post]
func bulkDeleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := web.ReadForm(r)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		redirect := web.LocalPath(form.Get("redirect_to"))
		if redirect == "" {
			redirect = "/manage-logs"
			// Se devuelven los filtros tal cual llegaron, aunque no se usen para borrar.
			echo := url.Values{}
			for _, k := range []string{"animal", "date_from", "date_to", "health"} {
				if v := strings.TrimSpace(form.Get(k)); v != "" {
					echo.Set(k, v)
				}
			}
			if len(echo) > 0 {
				redirect += "?" + echo.Encode()
			}
		}

		res, err := svc.BulkDelete(r.Context(), web.Values(form, "log_ids"))
		if err != nil {
			writeServiceError(w, log, "bulk delete daily logs", err)
			return
		}

		out := bulkDeleteResponse{
			RedirectTo:  redirect,
			Deleted:     res.Deleted,
			AnimalNames: res.AnimalNames,
		}
		if out.AnimalNames == nil {
			out.AnimalNames = []string{}
		}
		if res.Deleted == 0 {
			out.Message = "No logs were selected for deletion."
			web.WriteJSON(w, http.StatusOK, out)
			return
		}

		if res.From != nil {
			s := res.From.Format(DateLayout)
			out.DateFrom = &s
		}
		if res.To != nil {
			s := res.To.Format(DateLayout)
			out.DateTo = &s
		}
		out.Message = bulkMessage(res)
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func bulkMessage(res BulkDeleteResult) string {
	noun := "logs"
	if res.Deleted == 1 {
		noun = "log"
	}
	msg := "Successfully deleted " + strconv.Itoa(res.Deleted) + " daily " + noun
	if len(res.AnimalNames) > 0 {
		msg += " for " + strings.Join(res.AnimalNames, ", ")
	}
	if res.From != nil && res.To != nil {
		from, to := res.From.Format(DateLayout), res.To.Format(DateLayout)
		if from == to {
			msg += " on " + from
		} else {
			msg += " from " + from + " to " + to
		}
	}
	return msg + "."
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrAnimalNotFound):
		web.WriteError(w, http.StatusNotFound, "Animal not found.")
	case errors.Is(err, ErrNotFound):
		web.WriteError(w, http.StatusNotFound, "Daily log not found.")
	case errors.Is(err, ErrConflict):
		web.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		web.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error(op, map[string]any{"error": err})
		web.WriteError(w, http.StatusInternalServerError, "Error: "+err.Error())
	}
}

func toLogResponse(e Entry) logResponse {
	l := e.Log
	return logResponse{
		ID:                 l.ID,
		AnimalID:           l.AnimalID,
		AnimalName:         e.Animal.Name,
		Date:               l.Date.Format(DateLayout),
		MorningMilk:        l.MorningMilk,
		AfternoonMilk:      l.AfternoonMilk,
		EveningMilk:        l.EveningMilk,
		TotalMilk:          l.TotalMilk(),
		FeedAmount:         l.FeedAmount,
		Water:              l.Water,
		Temperature:        l.Temperature,
		HealthObservations: l.HealthObservations,
		Activity:           l.Activity,
		Notes:              l.Notes,
		CreatedBy:          l.CreatedBy,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func toLogResponses(entries []Entry) []logResponse {
	out := make([]logResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogResponse(e))
	}
	return out
}
