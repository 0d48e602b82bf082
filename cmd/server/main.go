package main

import (
	"fmt"
	"os"

	"hoteldash/internal/delivery"
	"hoteldash/internal/domain"
	"hoteldash/internal/infrastructure"
	"hoteldash/internal/usecase"
	"hoteldash/pkg/config"
	"hoteldash/pkg/logger"
	"hoteldash/pkg/metrics"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	m := metrics.New()

	properties := make([]domain.Property, 0, len(cfg.Properties))
	for _, p := range cfg.Properties {
		properties = append(properties, domain.Property{
			ID:       p.ID,
			Name:     p.Name,
			APIKey:   p.APIKey,
			Capacity: p.Capacity,
		})
	}
	if len(properties) == 0 {
		log.Warn("No properties configured, dashboard will be empty")
	}

	cloudbeds := infrastructure.NewCloudbedsClient(
		cfg.Cloudbeds.BaseURL,
		cfg.Cloudbeds.PageSize,
		cfg.Cloudbeds.PageDelay,
		cfg.Cloudbeds.RequestTimeout,
		log,
		m,
	)

	// The analytics path is optional: without a credential the dashboard
	// still renders booking data with traffic fields zeroed.
	var analytics domain.AnalyticsAPI
	if cfg.Analytics.ServiceAccount != "" && cfg.Analytics.PropertyID != "" {
		tokens, err := infrastructure.NewGoogleTokenSource(cfg.Analytics.ServiceAccount, cfg.Analytics.TokenURL, cfg.Cloudbeds.RequestTimeout)
		if err != nil {
			log.WithError(err).Error("Failed to initialize analytics credential, traffic will be unavailable")
		} else {
			analytics = infrastructure.NewAnalyticsClient(cfg.Analytics.APIURL, cfg.Analytics.PropertyID, tokens, cfg.Cloudbeds.RequestTimeout, log, m)
		}
	} else {
		log.Warn("Analytics credential not configured, traffic will be unavailable")
	}

	propertyService := usecase.NewPropertyService(cloudbeds, log, m)
	portfolioService := usecase.NewPortfolioService(properties, propertyService, cfg.Cloudbeds.BatchSize, log, m)
	trafficService := usecase.NewTrafficService(analytics, log)
	dashboardService := usecase.NewDashboardService(portfolioService, trafficService, cloudbeds, analytics, log, m)
	exportService := usecase.NewExportService()

	handlers := delivery.NewHTTPHandlers(dashboardService, exportService, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.Server.RequestTimeout)

	engine := router.SetupRoutes()

	log.WithField("port", cfg.Server.Port).Info("Starting server")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}
