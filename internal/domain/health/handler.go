package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
	"dairysync/internal/middleware"
	"dairysync/internal/platform/logger"
	"dairysync/internal/platform/web"
	"dairysync/internal/ports/capabilities"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.With(
		middleware.RequireSession,
		middleware.RequireCapability(capabilities.VetDashboard),
	).Get("/vet-dashboard", dashboardHandler(svc, log))
}

type issueResponse struct {
	LogID              string                      `json:"log_id"`
	AnimalID           string                      `json:"animal_id"`
	AnimalName         string                      `json:"animal_name"`
	Date               string                      `json:"date"`
	HealthObservations dailylogs.HealthObservation `json:"health_observations"`
	Temperature        *float64                    `json:"temperature"`
	Notes              string                      `json:"notes"`
	TotalMilk          float64                     `json:"total_milk"`
}

type attentionResponse struct {
	Animal             animals.Response            `json:"animal"`
	HealthObservations dailylogs.HealthObservation `json:"health_observations"`
	Date               string                      `json:"date"`
	Log                issueResponse               `json:"log"`
}

type dashboardResponse struct {
	Today                   string              `json:"today"`
	TotalAnimals            int                 `json:"total_animals"`
	TodayLogs               int                 `json:"today_logs"`
	AnimalsNeedingAttention []attentionResponse `json:"animals_needing_attention"`
	RecentHealthIssues      []issueResponse     `json:"recent_health_issues"`
}

// dashboardHandler godoc
// @Summary Dashboard veterinario
// @Tags health
// @Produce json
// @Success 200 {object} dashboardResponse
// @Failure 302 {string} string "sin sesión"
// @Failure 403 {object} web.ErrorBody
// @Router /vet-dashboard [get]
func dashboardHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			log.Error("vet dashboard", map[string]any{"error": err})
			web.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := dashboardResponse{
			Today:                   d.Today.Format(dailylogs.DateLayout),
			TotalAnimals:            d.TotalAnimals,
			TodayLogs:               d.TodayLogs,
			AnimalsNeedingAttention: make([]attentionResponse, 0, len(d.AnimalsNeedingAttention)),
			RecentHealthIssues:      make([]issueResponse, 0, len(d.RecentHealthIssues)),
		}
		for _, rec := range d.AnimalsNeedingAttention {
			out.AnimalsNeedingAttention = append(out.AnimalsNeedingAttention, attentionResponse{
				Animal:             animals.ToResponse(rec.Animal),
				HealthObservations: rec.HealthObservations,
				Date:               rec.Date.Format(dailylogs.DateLayout),
				Log:                toIssue(dailylogs.Entry{Log: rec.Log, Animal: rec.Animal}),
			})
		}
		for _, e := range d.RecentHealthIssues {
			out.RecentHealthIssues = append(out.RecentHealthIssues, toIssue(e))
		}

		web.WriteJSON(w, http.StatusOK, out)
	}
}

func toIssue(e dailylogs.Entry) issueResponse {
	return issueResponse{
		LogID:              e.Log.ID,
		AnimalID:           e.Animal.ID,
		AnimalName:         e.Animal.Name,
		Date:               e.Log.Date.Format(dailylogs.DateLayout),
		HealthObservations: e.Log.HealthObservations,
		Temperature:        e.Log.Temperature,
		Notes:              e.Log.Notes,
		TotalMilk:          e.Log.TotalMilk(),
	}
}
