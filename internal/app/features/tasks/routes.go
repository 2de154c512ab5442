// internal/app/features/tasks/routes.go
package tasks

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /tasks.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/mine", h.HandleMine)
	r.Get("/session/{sessionID}", h.HandleForSession)
	r.Delete("/session/{sessionID}", h.HandlePurgeSession)

	r.Route("/{taskID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Put("/", h.HandleUpdate)
		r.Delete("/", h.HandleDelete)
		r.Post("/complete", h.HandleComplete)
	})

	return r
}
