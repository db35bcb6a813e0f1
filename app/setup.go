package app

import (
	"log/slog"
	"os"

	"github.com/anle/todo-api/auth"
	"github.com/anle/todo-api/config"
	"github.com/anle/todo-api/database"
	"github.com/anle/todo-api/events"
	"github.com/anle/todo-api/handlers"
	"github.com/anle/todo-api/router"
	"github.com/anle/todo-api/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupAndRunApp wires the whole service: config, database, token service,
// stores, handlers, middleware and routes, then listens until shutdown.
func SetupAndRunApp() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.Connect(cfg.PostgresURI)
	if err != nil {
		return err
	}
	defer database.Close(db)
	log.Info("connected to PostgreSQL")

	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, auth.AccessTokenTTL)

	hub := events.NewHub(log)
	if cfg.MQTTURL != "" {
		if err := hub.ConnectMQTT(cfg.MQTTURL); err != nil {
			// the event feed is an extra, a missing broker must not stop the API
			log.Warn("mqtt publisher disabled", slog.Any("error", err))
		} else {
			log.Info("publishing todo events to MQTT")
		}
	}

	h := handlers.New(store.NewUserStore(db), store.NewTodoStore(db), tokens, hub, log)

	app := fiber.New()

	// cookies only cross origins when credentials are allowed, so the
	// origin list must stay a fixed allow-list, never "*"
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, h, tokens)

	config.AddSwaggerRoutes(app)

	return app.Listen(":" + cfg.Port)
}
