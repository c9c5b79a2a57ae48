package api

import (
	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Athletes *AthleteHandler
	Wods     *WodHandler
	Results  *ResultHandler
}

// Routes returns a function that registers every API endpoint on a chi
// router, for use with chi.Router.Route("/api", ...).
func (h Handlers) Routes() func(chi.Router) {
	return func(r chi.Router) {
		r.Route("/athletes", func(r chi.Router) {
			r.Post("/", h.Athletes.CreateAthlete)
			r.Get("/{athleteID}", h.Athletes.GetAthlete)
			r.Patch("/{athleteID}", h.Athletes.UpdateAthlete)
			r.Delete("/{athleteID}", h.Athletes.DeleteAthlete)

			r.Get("/{athleteID}/wods/{wodID}/results", h.Results.ListResults)
			r.Get("/{athleteID}/wods/{wodID}/pr", h.Results.GetPR)
		})

		r.Route("/wods", func(r chi.Router) {
			r.Post("/", h.Wods.CreateWod)
			r.Get("/{id}", h.Wods.GetWod)
			r.Patch("/{id}", h.Wods.UpdateWod)
			r.Delete("/{id}", h.Wods.DeleteWod)
		})

		r.Route("/results", func(r chi.Router) {
			r.Post("/", h.Results.RecordResult)
			r.Get("/{id}", h.Results.GetResult)
			r.Delete("/{id}", h.Results.DeleteResult)
		})
	}
}
