package identity

import (
	"net/http"

	"github.com/CaseLink/CL-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(rateLimit func(http.Handler) http.Handler) http.Handler {
	sessionFetcher := SessionInfo{}
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/signup", SignupHandler)
		r.Post("/login", LoginHandler)
	})

	r.Post("/logout", LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Get("/user", UserHandler)
	})

	return r
}
