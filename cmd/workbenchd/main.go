package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/openassess/openassess/internal/api/http"
	auth "github.com/openassess/openassess/internal/auth/middleware"
	"github.com/openassess/openassess/internal/config"
	"github.com/openassess/openassess/internal/db"
	"github.com/openassess/openassess/internal/fieldstore"
	"github.com/openassess/openassess/internal/rbac"
	"github.com/openassess/openassess/internal/render"
	"github.com/openassess/openassess/internal/submissions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	fields := fieldstore.NewSQLStore(dbh, cfg.DBDriver)
	subs := submissions.NewSQLStore(dbh, cfg.DBDriver)

	renderer, err := render.New(cfg.StaticBase)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	deps := api.Deps{Fields: fields, Subs: subs, Renderer: renderer}

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret, cfg.WorkbenchUser, cfg.WorkbenchPassHash)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))
	r.Get("/scenarios", api.ScenariosHandler())
	r.Handle("/static/*", http.StripPrefix("/static/", render.StaticHandler()))

	// Protected block surface (JWT carries the learner identity)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc), auth.AttachRole())

		// Author-only: create from scenario XML, export back out
		pr.With(rbac.Require("block:create")).
			Post("/blocks", api.CreateBlockHandler(deps))
		pr.With(rbac.Require("block:export")).
			Get("/blocks/{usageID}/export", api.ExportBlockHandler(deps))

		// Learner surface
		pr.With(rbac.Require("block:render")).
			Get("/blocks/{usageID}/render", api.RenderBlockHandler(deps))
		pr.With(rbac.Require("block:render")).
			Post("/blocks/{usageID}/render/{template}", api.RenderAssessmentHandler(deps))

		pr.With(rbac.Require("block:handler")).
			Post("/blocks/{usageID}/submit", api.SubmitResponseHandler(deps))
		pr.With(rbac.Require("block:handler")).
			Post("/blocks/{usageID}/peer-assess", api.PeerAssessHandler(deps))
		pr.With(rbac.Require("block:handler")).
			Post("/blocks/{usageID}/self-assess", api.SelfAssessHandler(deps))
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("workbench listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(s.ListenAndServe())
}
