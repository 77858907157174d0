package main

import (
	"frontdesk/internal/passes/handler"
	"frontdesk/internal/passes/service"
	"frontdesk/internal/passes/validator"
	"frontdesk/pkg/app"
	"frontdesk/pkg/config"
	"frontdesk/pkg/events"
	"frontdesk/pkg/nexudus"
	"frontdesk/pkg/timeutil"

	"github.com/joho/godotenv"
)

const ServiceName = "frontdesk"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting pass resolution service")

	passService, producer := initServices(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close event producer", "error", err)
			}
		}()
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewPassHandler(passService, validator.NewRequestValidator(cfg.Log), cfg.Log),
		handler.NewHealthHandler(passService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.PassService, *events.Producer) {
	upstream := nexudus.NewClient(nexudus.Config{
		BaseURL:   cfg.NexudusBaseURL,
		AuthToken: nexudus.BasicToken(cfg.NexudusUsername, cfg.NexudusPassword),
		Timeout:   cfg.NexudusTimeout,
	})

	var producer *events.Producer
	if cfg.EventsEnabled() {
		p, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize event producer", "error", err)
		}
		producer = p
		cfg.Log.Info("Pass-resolved events enabled", "topic", cfg.KafkaTopic)
	}

	passService := service.NewPassService(upstream, cfg, timeutil.SystemClock{}, producer)
	cfg.Log.Info("Pass service initialized", "upstream", cfg.NexudusBaseURL)
	return passService, producer
}
