package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/hausly/hausly-escrow-service/internal/app/background"
	"github.com/hausly/hausly-escrow-service/internal/config"
	"github.com/hausly/hausly-escrow-service/internal/delivery/http/handlers"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/analytics"
	publisher "github.com/hausly/hausly-escrow-service/internal/infrastructure/kafka"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/metrics"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/migrate"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/notifier"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres"
	"github.com/hausly/hausly-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/hausly/hausly-escrow-service/internal/usecase"
	escrowdto "github.com/hausly/hausly-escrow-service/internal/usecase/dto/escrow"
	handoverusecase "github.com/hausly/hausly-escrow-service/internal/usecase/handover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg)
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.EscrowDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	sub := publisher.NewDefaultKafkaSubscriber(brokers)

	// Init repositories
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	handoverRepo := repository.NewDefaultHandoverRepository(db)
	walletRepo := repository.NewDefaultWalletRepository(db)
	creatorRepo := repository.NewDefaultCreatorRepository(db)

	marketplaceNotifier := notifier.NewHTTPNotifier(cfg.Marketplace.CallbackUrl)
	analyticsClient := analytics.NewClient(cfg.AnalyticsService.BaseURL)
	handoverMetrics := metrics.NewHandoverMetrics()

	// Init usecases
	tierUc := usecase.NewDefaultTierUsecase(creatorRepo, analyticsClient)
	escrowUc := usecase.NewDefaultEscrowUsecase(
		escrowRepo,
		handoverRepo,
		creatorRepo,
		pub,
		marketplaceNotifier,
		cfg.Commission.PlatformFeePercent,
	)
	handoverUc := handoverusecase.NewDefaultHandoverUsecase(
		handoverRepo,
		escrowRepo,
		pub,
		marketplaceNotifier,
		handoverMetrics,
	)

	// Фоновые задачи: пересчет тиров, напоминания о зависших handover
	tasks := background.NewBackgroundTasks(tierUc, handoverRepo, marketplaceNotifier)
	tasks.StartAll(context.Background())

	// Поток событий оплаты: на каждое событие - пара эскроу+handover
	paymentEvents, err := sub.Subscribe(publisher.TopicPaymentEvents, "escrow-service")
	if err != nil {
		log.Fatalf("failed to subscribe to payment events: %v", err)
	}
	go func() {
		for msg := range paymentEvents {
			var event publisher.PaymentEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				slog.Error("failed to decode payment event", "error", err.Error())
				continue
			}
			out, err := escrowUc.CreateFromPayment(&escrowdto.CreateFromPaymentInput{
				PaymentTxID:  event.TransactionID,
				PropertyID:   event.PropertyID,
				BuyerID:      event.BuyerID,
				DeveloperID:  event.DeveloperID,
				CreatorID:    event.CreatorID,
				Amount:       event.Amount,
				HandoverType: event.HandoverType,
			})
			if err != nil {
				slog.Error("failed to process payment event", "tx_id", event.TransactionID, "error", err.Error())
				continue
			}
			handoverMetrics.RecordCreated(string(out.Handover.Type))
		}
	}()

	// Prometheus endpoint
	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		log.Printf("metrics server started on %s\n", addr)
		if err := http.ListenAndServe(addr, metricsMux); err != nil {
			log.Printf("metrics server stopped: %v\n", err)
		}
	}()

	router := handlers.NewRouter(
		handlers.NewHandoverHandler(handoverUc),
		handlers.NewEscrowHandler(escrowUc),
		handlers.NewWalletHandler(walletRepo),
		handlers.NewCreatorHandler(tierUc),
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("escrow service started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func setupLogger(cfg *config.EscrowConfig) {
	level := slog.LevelInfo
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
