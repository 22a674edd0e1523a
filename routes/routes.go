package routes

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/maze-tournament/docs"
	"github.com/Dosada05/maze-tournament/handlers"
	"github.com/Dosada05/maze-tournament/middleware"
)

const requestTimeout = 60 * time.Second

func SetupRoutes(
	router chi.Router,
	logger *slog.Logger,
	allowedOrigins []string,
	mazeHandler *handlers.MazeHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.Heartbeat("/health"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/bracket", webSocketHandler.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Route("/maze", func(r chi.Router) {
			r.Post("/", mazeHandler.RunTournament)
			r.Get("/generate", mazeHandler.GenerateMaze)
			r.Post("/solve", mazeHandler.SolveMaze)
			r.Post("/run", mazeHandler.RunPlayer)
			r.Get("/history", mazeHandler.History)
			r.Get("/runs", mazeHandler.Runs)
			r.Get("/rankings", mazeHandler.Rankings)
		})

		r.Route("/bracket", func(r chi.Router) {
			r.Post("/", bracketHandler.BuildBracket)
			r.Get("/", bracketHandler.GetBracket)
			r.Get("/tree", bracketHandler.GetBracketTree)
			r.Put("/match", bracketHandler.UpdateMatch)
		})
	})
}
