package wire

import (
	"net/http"

	"mahal-booking/internal/adaptor"
	"mahal-booking/internal/data/repository"
	"mahal-booking/internal/usecase"
	"mahal-booking/pkg/lock"
	"mahal-booking/pkg/metrics"
	"mahal-booking/pkg/middleware"
	"mahal-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, locker lock.Locker, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, locker, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	if config.Metrics.Enabled {
		metrics.Register()
		r.Use(middleware.Metrics())
		r.Handle(config.Metrics.Path, promhttp.Handler())
	}

	// Apply routes
	wireBooking(r, handler.Booking, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
