package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpHdlr "resumatch/handler/http"
	"resumatch/src/core/semanticindex"
	"resumatch/src/core/skills"
	"resumatch/src/infrastructure/integrations/ollama"
	"resumatch/src/infrastructure/integrations/tavily"
	"resumatch/src/infrastructure/log"
	"resumatch/src/storage/postgres/jobctrl"
	"resumatch/src/storage/postgres/resumectrl"
	"resumatch/src/storage/weaviate"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the semantic matching server",
	Long:  `The serve command starts an HTTP server that provides resume and job indexing, semantic search and skill extraction.`,
	Run:   RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer(cmd *cobra.Command, args []string) {
	// Initialize PostgreSQL connection
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		viper.GetString("postgres.host"),
		viper.GetString("postgres.user"),
		viper.GetString("postgres.password"),
		viper.GetString("postgres.db"),
		viper.GetString("postgres.port"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Error(err, "Failed to connect to database")
		return
	}

	if err := db.AutoMigrate(&resumectrl.Resume{}, &jobctrl.Job{}); err != nil {
		log.Error(err, "Failed to migrate database schema")
		return
	}

	resumeService, err := resumectrl.NewResumeService(db)
	if err != nil {
		log.Error(err, "Failed to create resume service")
		return
	}
	jobService, err := jobctrl.NewJobService(db)
	if err != nil {
		log.Error(err, "Failed to create job service")
		return
	}

	// Initialize Ollama client and embedding provider
	oc := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: 30 * time.Second,
	})
	embedder, err := ollama.NewEmbeddingProvider(oc,
		viper.GetString("embedding.model"),
		viper.GetInt("embedding.dimension"))
	if err != nil {
		log.Error(err, "Failed to create embedding provider")
		return
	}

	// Initialize Weaviate client and provision the document class
	wc := weaviateClient.New(weaviateClient.Config{
		Host:   viper.GetString("weaviate.url"),
		Scheme: "http",
	})
	index := weaviate.NewDocumentIndex(weaviate.NewSDK(wc), viper.GetString("weaviate.class"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = index.EnsureSchema(ctx)
	cancel()
	if err != nil {
		log.Error(err, "Failed to provision vector index schema")
		return
	}

	// Initialize the document embedding service
	documents, err := semanticindex.NewService(embedder, index)
	if err != nil {
		log.Error(err, "Failed to create semantic index service")
		return
	}

	// Initialize web search client
	webSearch := tavily.NewClient(
		viper.GetString("tavily.url"),
		viper.GetString("tavily.api_key"),
		&http.Client{Timeout: 15 * time.Second},
	)

	// Initialize HTTP handler
	handler := httpHdlr.NewHandler(documents, resumeService, jobService, skills.NewExtractor(), webSearch)

	// Setup gin router
	r := gin.Default()

	// Register routes
	handler.RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Parse shutdown timeout
	timeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "Invalid shutdown timeout, using default 5s")
		timeout = 5 * time.Second
	}

	// Create context with timeout for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	// Get underlying *sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		log.Error(err, "Failed to get underlying *sql.DB")
	} else {
		// Close database connection
		if err := sqlDB.Close(); err != nil {
			log.Error(err, "Error closing database connection")
		}
	}

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}
