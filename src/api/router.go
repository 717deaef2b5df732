package api

import (
	"net/http"

	"fintrack-server/src/config"
	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
	"fintrack-server/src/report"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config) *chi.Mux {
	mailer := report.Mailer{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		From:     cfg.EmailFrom,
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Profile pictures
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register(pool))
		r.Post("/auth/login", handlers.Login(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// Auth
			r.Get("/auth/logout", handlers.Logout())
			r.Get("/auth/me", handlers.Me(pool))

			// Transactions
			r.Get("/transactions", handlers.ListTransactions(pool))
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions/stats/summary", handlers.GetStats(pool))
			r.Get("/transactions/{id}", handlers.GetTransaction(pool))
			r.Put("/transactions/{id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{id}", handlers.DeleteTransaction(pool))

			// Categories
			r.Get("/categories", handlers.ListCategories(pool))
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Get("/categories/{id}", handlers.GetCategory(pool))
			r.Put("/categories/{id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{id}", handlers.DeleteCategory(pool))

			// Profile
			r.Get("/users/profile", handlers.GetProfile(pool))
			r.Put("/users/profile", handlers.UpdateProfile(pool))
			r.Delete("/users/profile", handlers.DeleteAccount(pool))
			r.Put("/users/profile/picture", handlers.UpdateProfilePicture(pool, cfg.UploadDir))

			// Reports
			r.Get("/reports/pdf", handlers.PDFReport(pool))
			r.Get("/reports/csv", handlers.CSVReport(pool))
			r.Post("/reports/email", handlers.EmailReport(pool, mailer))
		})
	})

	return r
}
