package cases

import (
	"net/http"

	"github.com/CaseLink/CL-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the case API. Reads are public; mutations sit behind the
// session middleware and the rate limiter.
func SetupRoutes(store Storage, fetcher middleware.SessionFetcher, rateLimit func(http.Handler) http.Handler) http.Handler {
	h := NewHandler(store)
	r := chi.NewRouter()

	r.Get("/cases", h.ListCasesHandler)
	r.Get("/cases/{id}", h.GetCaseHandler)
	r.Get("/cases/{id}/comments", h.ListCommentsHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Get("/users", h.ListUsersHandler)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/cases", h.CreateCaseHandler)
			r.Patch("/cases/{id}", h.UpdateCaseHandler)
			r.Post("/cases/{id}/comments", h.CreateCommentHandler)
		})
	})

	return r
}
