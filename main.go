package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/CaseLink/CL-Backend/internal/cases"
	"github.com/CaseLink/CL-Backend/internal/config"
	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/CaseLink/CL-Backend/internal/identity"
	"github.com/CaseLink/CL-Backend/internal/middleware"
	"github.com/CaseLink/CL-Backend/internal/notifications"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect()
	identity.Init()
	cases.Init()

	store := cases.DatabaseStorage{}
	identity.Configure(store, cfg.SessionDuration())

	rateLimit := middleware.RateLimitMiddleware(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	sessionFetcher := identity.SessionInfo{}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Mount("/api/auth", identity.SetupRoutes(rateLimit))
	r.Mount("/api/notifications", notifications.SetupRoutes(sessionFetcher))
	r.Mount("/api", cases.SetupRoutes(store, sessionFetcher, rateLimit))

	log.Printf("Server listening on port :%s...", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server error: ", err)
	}
}
