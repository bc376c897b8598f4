package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/codebuildervaibhav/speaker-services/internal/cleanup"
	"github.com/codebuildervaibhav/speaker-services/internal/config"
	"github.com/codebuildervaibhav/speaker-services/internal/handlers"
	"github.com/codebuildervaibhav/speaker-services/internal/logbuf"
	"github.com/codebuildervaibhav/speaker-services/internal/model"
)

func main() {
	configPath := flag.String("config", "config/diarizer.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath, config.DiarizerDefaults())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cleanup.EnsureTempDirExists(cfg.Storage.TempDir); err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}

	logBuffer := logbuf.New()
	log.SetOutput(io.MultiWriter(os.Stdout, logBuffer))

	// A missing Hugging Face token surfaces as a 500 on first /diarize use,
	// not at startup.
	registry := model.NewRegistry(model.Options{
		RunnerPath:    cfg.Model.RunnerPath,
		Device:        cfg.Model.Device,
		TempDir:       cfg.Storage.TempDir,
		DiarizerModel: cfg.Model.ID,
	})

	sweeper := cleanup.NewScheduler(cfg.Storage.TempDir, cfg.Cleanup.IntervalMinutes, cfg.Cleanup.MaxAgeHours)
	sweeper.Start()
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Limits.MaxFileSizeMB * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	diarizeHandler := handlers.NewDiarizeHandler(registry)

	app.Get("/health", handlers.Health(cfg.Model.ID))
	app.Post("/diarize", diarizeHandler.Handle)
	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"logs": logBuffer.Lines()})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Diarizer listening on %s (model: %s)", addr, cfg.Model.ID)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
