// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /groups.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/mine", h.HandleMine)

	r.Route("/requests", func(r chi.Router) {
		r.Get("/ref/{ref}", h.HandleRequestByRef)
		r.Post("/{requestID}/approve", h.HandleApprove)
		r.Post("/{requestID}/reject", h.HandleReject)
	})

	r.Route("/{groupID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Patch("/", h.HandleUpdate)
		r.Delete("/", h.HandleDelete)
		r.Put("/approval", h.HandleSetApproval)
		r.Post("/join", h.HandleJoin)
		r.Get("/requests", h.HandlePendingRequests)

		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.HandleMembers)
			r.Post("/", h.HandleAddMember)
			r.Post("/{userID}/promote", h.HandlePromote)
			r.Delete("/{userID}", h.HandleRemoveMember)
		})
	})

	return r
}
