package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"solar-savings/internal/api/handlers"
	"solar-savings/internal/api/middleware"
	"solar-savings/internal/config"
	"solar-savings/internal/data"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s (data dir: %s)", path, cfg.DataDir)
	}

	// Repeated dashboard refreshes re-run the pipeline; memoize file loads
	// unless explicitly disabled.
	var cache *data.LoadCache
	if os.Getenv("DISABLE_LOAD_CACHE") != "true" {
		cache = data.NewLoadCache()
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	analysisHandler := handlers.NewAnalysisHandler(cfg, cache)
	datasetsHandler := handlers.NewDatasetsHandler(cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api/v1")
	{
		api.POST("/analysis", analysisHandler.RunAnalysis)
		api.GET("/analysis/:id", analysisHandler.GetAnalysis)
		api.GET("/analysis/:id/summary.csv", analysisHandler.GetSummaryCSV)
		api.GET("/analysis/:id/report.xlsx", analysisHandler.GetReportXLSX)
		api.GET("/analysis/:id/report.pdf", analysisHandler.GetReportPDF)
		api.GET("/analysis/:id/profile", analysisHandler.GetProfile)

		api.GET("/datasets", datasetsHandler.ListDatasets)
	}

	// Serve a dashboard build if one is present (SPA routing).
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
