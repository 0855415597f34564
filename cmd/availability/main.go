package main

import (
	"carve/internal/availability/events"
	"carve/internal/availability/handler"
	"carve/internal/availability/repository"
	"carve/internal/availability/service"
	"carve/internal/availability/validator"
	"carve/internal/provider"
	"carve/pkg/app"
	"carve/pkg/config"
	kafka_config "carve/pkg/kafka/config"
	"carve/pkg/token"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	availabilityService, publisher := initServices(cfg)
	defer publisher.Close()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.InternalAPIToken, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.AvailabilityService, events.Publisher) {
	criteriaValidator := validator.NewCriteriaValidator(cfg.Log)
	itemsClient := provider.NewClient(cfg)
	tokenStore := repository.NewMongoTokenStore(cfg)
	signer := token.NewSigner(cfg.TokenSalt)
	publisher := events.NewPublisher(kafka_config.Load(), cfg.SearchEventsTopic, cfg.Log)

	availabilityService := service.NewAvailabilityService(
		itemsClient,
		tokenStore,
		signer,
		publisher,
		criteriaValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService, publisher
}
