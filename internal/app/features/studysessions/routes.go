// internal/app/features/studysessions/routes.go
package studysessions

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /sessions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/mine", h.HandleMine)
	r.Get("/group/{groupID}", h.HandleForGroup)

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Delete("/", h.HandleDelete)
		r.Put("/capacity", h.HandleSetCapacity)
		r.Post("/participants/{userID}", h.HandleAddParticipant)
		r.Delete("/participants/{userID}", h.HandleRemoveParticipant)
	})

	return r
}
