package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"jobradar/api-gateway/config"
	"jobradar/api-gateway/handlers"
	"jobradar/api-gateway/internal/aiclient"
	"jobradar/api-gateway/internal/jobstore"
	"jobradar/api-gateway/internal/proposal"
	"jobradar/api-gateway/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.InitLogger()

	if err := config.InitSupabase(); err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	store := jobstore.New(config.SupabaseClient, config.MetricsClient)

	// Proposal generation degrades to a configuration error response when no
	// key is present; the catalog and metrics stay up.
	var proposals *proposal.Orchestrator
	if key := config.OpenAIKey(); key != "" {
		generator, err := aiclient.NewClient(key)
		if err != nil {
			log.Fatalf("Failed to initialize generation client: %v", err)
		}
		proposals = proposal.NewOrchestrator(generator)
	} else {
		config.Log.Warn("OPENAI_API_KEY not set; proposal generation disabled")
	}

	h := handlers.NewApplicationHandler(store, proposals, config.Log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	// Job catalog
	apiV1.Get("/jobs", h.GetJobs)

	// Market intelligence metrics
	metrics := apiV1.Group("/metrics")
	metrics.Get("/total-count", h.GetTotalCount)
	metrics.Get("/overall-stats", h.GetOverallStats)
	metrics.Get("/budget-analysis", h.GetBudgetAnalysis)
	metrics.Get("/jobs-over-time", h.GetJobsOverTime)
	metrics.Get("/skills-demand", h.GetSkillsDemand)
	metrics.Get("/client-countries", h.GetClientCountries)
	metrics.Get("/client-activity", h.GetClientActivity)

	// Export and proposal drafting
	apiV1.Get("/export-data", h.ExportData)
	apiV1.Post("/generate-proposal", h.GenerateProposal)

	addr := config.ListenAddr()
	log.Printf("Starting API Gateway on %s...", addr)
	log.Fatal(app.Listen(addr))
}
