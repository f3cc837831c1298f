package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/check-scam/api-go/config"
	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/routes"
	"github.com/check-scam/api-go/search"
	"github.com/check-scam/api-go/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize Elasticsearch and warm the indices. The API stays up on
	// search failures; the searcher falls back to the database.
	searchCfg := config.GetSearchConfig()
	esClient, err := search.NewClient(searchCfg.URL)
	if err != nil {
		log.Fatalf("Failed to create Elasticsearch client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := esClient.EnsureIndices(ctx); err != nil {
		log.Printf("Elasticsearch index setup failed: %v", err)
	}
	cancel()

	go reindexApproved(db, esClient)

	searcher := search.NewSearcher(esClient, db)
	propagator := search.NewPropagator(esClient, searchCfg.PropagateBuffer)
	defer propagator.Close()

	uploader := storage.NewUploader(config.GetStorageConfig())

	// Create a new Gin router
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	// Initialize routes
	routes.SetupRoutes(r, db, esClient, searcher, propagator, uploader)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// reindexApproved pushes all approved warnings into Elasticsearch at startup
// so the index survives a wiped cluster.
func reindexApproved(db *gorm.DB, client *search.Client) {
	var warnings []models.Warning
	if err := db.Where("status = ?", models.StatusApproved).Find(&warnings).Error; err != nil {
		log.Printf("Startup reindex query failed: %v", err)
		return
	}
	if len(warnings) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	client.BulkIndexWarnings(ctx, warnings)
}
