package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/playground-standings/docs" // swagger docs
	"github.com/Dosada05/playground-standings/handlers"
	"github.com/Dosada05/playground-standings/metrics"
	"github.com/Dosada05/playground-standings/middleware"
	"github.com/Dosada05/playground-standings/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options - параметры маршрутизатора, приходящие из конфигурации.
type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type Handlers struct {
	Auth       *handlers.AuthHandler
	Playground *handlers.PlaygroundHandler
	Standings  *handlers.StandingsHandler
	Match      *handlers.MatchHandler
	Admin      *handlers.AdminHandler
	Player     *handlers.PlayerHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, opts Options, h Handlers, recorder *metrics.Recorder, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger, recorder))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", recorder.Handler())
	router.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// WebSocket живёт дольше таймаутов и лимитов обычных запросов.
	router.Get("/ws/playgrounds/{playgroundID}", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, recorder))

		r.Post("/auth/login", h.Auth.Login)
		r.Get("/time-slots", h.Standings.GetTimeSlots)

		r.Route("/playgrounds", func(r chi.Router) {
			r.Get("/", h.Playground.ListPlaygrounds)
			r.Route("/{playgroundID}", func(r chi.Router) {
				r.Get("/", h.Playground.GetPlayground)
				r.Get("/standings", h.Standings.GetStandings)
				r.Get("/qualification", h.Standings.GetQualification)
				r.Get("/play-in", h.Standings.GetPlayIn)
				r.Get("/bracket", h.Standings.GetBracket)
				r.Get("/calendar", h.Standings.GetCalendar)
				r.Get("/matches", h.Match.ListMatches)
				r.Get("/teams/{teamID}/stats", h.Standings.GetTeamStats)
				r.Get("/top-scorers", h.Standings.GetTopScorers)
				r.Get("/players", h.Player.ListPlayers)
			})
		})
	})

	// Защищенные маршруты только для администратора
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(opts.JWTSecret)))
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Post("/playgrounds", h.Playground.CreatePlayground)
		r.Route("/playgrounds/{playgroundID}", func(r chi.Router) {
			r.Post("/groups", h.Playground.CreateGroup)
			r.Post("/teams", h.Playground.CreateTeam)
			r.Post("/matches", h.Match.CreateMatch)
			r.Post("/schedule", h.Admin.GenerateSchedule)
			r.Post("/players", h.Player.CreatePlayer)
			r.Post("/publish", h.Admin.Publish)
			r.Delete("/publish", h.Admin.Unpublish)
		})
		r.Put("/matches/{matchID}/result", h.Match.RecordResult)
		r.Put("/matches/{matchID}/player-points", h.Player.RecordPlayerPoints)
		r.Delete("/matches/{matchID}", h.Match.DeleteMatch)
		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Post("/warnings", h.Player.AddWarning)
			r.Delete("/warnings", h.Player.RemoveWarning)
			r.Post("/expulsion", h.Player.Expel)
		})
	})
}
