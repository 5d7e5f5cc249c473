package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewApp wires the handler into a fiber application.
func NewApp(handler SchedulerHandler, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(requestLogger(logger))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/priority", handler.PriorityScheduling)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/all", handler.AllAlgorithms)

		v1.Get("/runs", handler.ListRuns)
		v1.Get("/runs/:id", handler.GetRun)
		v1.Get("/runs/:id/snapshot", handler.RunSnapshot)
	}

	return app
}

// requestLogger logs each request at INFO level (method, path, status, duration).
func requestLogger(logger *slog.Logger) fiber.Handler {
	logger = logger.With("component", "http")
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		logger.Info("request",
			"method", ctx.Method(),
			"path", ctx.Path(),
			"status", ctx.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}
