package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	_ "librosrec/docs" // swagger docs

	"librosrec/internal/cache"
	"librosrec/internal/config"
	"librosrec/internal/dataset"
	"librosrec/internal/db"
	"librosrec/internal/handler"
	"librosrec/internal/repository"
	"librosrec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title LibrosRec Book Recommender API
// @version 1.0
// @description API de recomendación de libros infantiles (content-based, colaborativo item-item y FunkSVD precalculado)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// ==========================================================
	// Dataset en memoria: catálogos, matrices y tablas por usuario.
	// Se carga UNA vez acá y de ahí en adelante es solo lectura.
	// ==========================================================
	store, err := dataset.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("[dataset] error cargando artefactos: %v", err)
	}
	log.Printf("[dataset] cargado: %d libros (contenido), %d libros (colaborativo), %d usuarios con recomendaciones",
		store.Content.Len(), store.Collab.Len(), len(store.UserRecs))

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	contentRepo := repository.NewBookRepository(store.Content)
	collabRepo := repository.NewBookRepository(store.Collab)
	contentSims := repository.NewSimilarityRepository(store.ContentSim)
	collabSims := repository.NewSimilarityRepository(store.CollabSim)
	userDataRepo := repository.NewUserDataRepository(store.UserRecs, store.UserTopRated)
	historyRepo := repository.NewHistoryRepository()
	userRepo := repository.NewUserRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	bookSvc := service.NewBookService(contentRepo)
	// el muestreo de FunkSVD es aleatorio por contrato; la seed va inyectada
	// para poder fijarla en tests
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recSvc := service.NewRecommendService(contentRepo, collabRepo, contentSims, collabSims, userDataRepo, historyRepo, rng)
	adminSvc := service.NewAdminService(contentRepo, collabRepo, contentSims, collabSims, userDataRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	bookH := handler.NewBookHandler(bookSvc)
	recH := handler.NewRecommendHandler(recSvc)
	adminH := handler.NewAdminMaintenanceHandler(adminSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Catálogo (público)
	r.Get("/books/search", bookH.Search)
	r.Get("/books/top", bookH.Top)
	r.Get("/books/resolve", bookH.Resolve)
	r.Get("/books/{id}", bookH.GetBook)

	// Recomendaciones por título / autor (públicas, como las pestañas de la app vieja)
	r.Get("/recommendations/content", recH.ByContent)
	r.Get("/recommendations/collaborative", recH.ByCollaborative)
	r.Get("/recommendations/author", recH.ByAuthor)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (cuenta con datasetUserId enlazado) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/recommendations", recH.GetMyRecommendations)
			r.Get("/profile", recH.GetMyProfile)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/recommendations", recH.GetUserRecommendations)
				r.Get("/profile", recH.GetUserProfile)
				r.Get("/history", recH.GetHistory)

				// WebSocket
				r.Get("/ws/recommendations", recH.GetUserRecommendationsWS)
			})

			// --- mantenimiento: resumen del dataset y flush de cache ---
			handler.MountAdminMaintenanceRoutes(r, adminH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
