package notifications

import (
	"net/http"

	"github.com/CaseLink/CL-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Get("/", FeedHandler)
	})

	return r
}
