package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/restro-crm/internal/clock"
	"github.com/xavierca1/restro-crm/internal/config"
	"github.com/xavierca1/restro-crm/internal/infra/database"
	"github.com/xavierca1/restro-crm/internal/infra/http/handlers"
	"github.com/xavierca1/restro-crm/internal/infra/http/middleware"
	"github.com/xavierca1/restro-crm/internal/infra/mail"
	"github.com/xavierca1/restro-crm/internal/infra/queue"
	"github.com/xavierca1/restro-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	orderRepo := database.NewOrderRepository(db)
	contactRepo := database.NewContactRepository(db)
	interactionRepo := database.NewInteractionRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_NOTIFY_TO", "sales-ops@restro-crm.io"),
	)

	// 3. Activity worker (consumes call/transfer events)
	worker := queue.NewWorker(rabbitMQ.Ch, interactionRepo, mailSender)
	go worker.Start(queue.QueueName)

	// 4. Use cases
	clk := clock.SystemClock{}
	thresholds := config.ThresholdsFromEnv()

	schedulerUC := usecase.NewCallSchedulerUseCase(leadRepo, clk, producer)
	performanceUC := usecase.NewPerformanceUseCase(leadRepo, orderRepo, clk, thresholds)
	patternUC := usecase.NewOrderPatternUseCase(orderRepo, clk)
	transferUC := usecase.NewTransferLeadsUseCase(leadRepo, clk, producer)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, schedulerUC, transferUC)
	performanceHandler := handlers.NewPerformanceHandler(performanceUC)
	orderHandler := handlers.NewOrderHandler(orderRepo, patternUC)
	contactHandler := handlers.NewContactHandler(contactRepo, leadRepo)
	interactionHandler := handlers.NewInteractionHandler(interactionRepo, leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Post("/", leadHandler.HandleCreate)
		r.Get("/", leadHandler.HandleList)
		r.Get("/requiring-calls", leadHandler.HandleRequiringCalls)
		r.Post("/transfer", leadHandler.HandleTransfer)

		r.Get("/performance/well", performanceHandler.HandleWellPerforming)
		r.Get("/performance/under", performanceHandler.HandleUnderPerforming)
		r.Get("/performance/metrics", performanceHandler.HandleLeadMetrics)

		r.Get("/{id}", leadHandler.HandleGetByID)
		r.Put("/{id}", leadHandler.HandleUpdate)
		r.Delete("/{id}", leadHandler.HandleDelete)

		r.Post("/{leadId}/record-call", leadHandler.HandleRecordCall)
		r.Put("/{leadId}/call-frequency", leadHandler.HandleUpdateCallFrequency)

		r.Get("/{leadId}/orders", orderHandler.HandleListByLead)
		r.Post("/{leadId}/contacts", contactHandler.HandleCreate)
		r.Get("/{leadId}/contacts", contactHandler.HandleListByLead)
		r.Get("/{leadId}/interactions", interactionHandler.HandleListByLead)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.HandleCreate)
		r.Get("/filter", orderHandler.HandleFiltered)
		r.Get("/patterns", orderHandler.HandleOrderingPatterns)
		r.Get("/{id}", orderHandler.HandleGetByID)
		r.Put("/{id}", orderHandler.HandleUpdate)
		r.Delete("/{id}", orderHandler.HandleDelete)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/{id}", contactHandler.HandleGetByID)
		r.Put("/{id}", contactHandler.HandleUpdate)
		r.Delete("/{id}", contactHandler.HandleDelete)
	})

	r.Route("/interactions", func(r chi.Router) {
		r.Post("/", interactionHandler.HandleCreate)
		r.Get("/{id}", interactionHandler.HandleGetByID)
		r.Put("/{id}", interactionHandler.HandleUpdate)
		r.Delete("/{id}", interactionHandler.HandleDelete)
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("Restro CRM API listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
