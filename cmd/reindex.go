package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"resumatch/src/core/semanticindex"
	"resumatch/src/infrastructure/integrations/ollama"
	"resumatch/src/storage/postgres/jobctrl"
	"resumatch/src/storage/postgres/resumectrl"
	"resumatch/src/storage/weaviate"
)

const reindexPageSize = 100

// reindexCmd represents the reindex command
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Re-embed every stored resume and job description",
	Long: `The reindex command walks all resume and job rows and writes fresh
embeddings into the vector index. Use it after changing the embedding model
or to repair rows that were saved while the index was unavailable.`,
	Run: RunReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func RunReindex(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		viper.GetString("postgres.host"),
		viper.GetString("postgres.user"),
		viper.GetString("postgres.password"),
		viper.GetString("postgres.db"),
		viper.GetString("postgres.port"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		return
	}

	resumeService, err := resumectrl.NewResumeService(db)
	if err != nil {
		fmt.Printf("Failed to create resume service: %v\n", err)
		return
	}
	jobService, err := jobctrl.NewJobService(db)
	if err != nil {
		fmt.Printf("Failed to create job service: %v\n", err)
		return
	}

	oc := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: 30 * time.Second,
	})
	embedder, err := ollama.NewEmbeddingProvider(oc,
		viper.GetString("embedding.model"),
		viper.GetInt("embedding.dimension"))
	if err != nil {
		fmt.Printf("Failed to create embedding provider: %v\n", err)
		return
	}

	wc := weaviateClient.New(weaviateClient.Config{
		Host:   viper.GetString("weaviate.url"),
		Scheme: "http",
	})
	index := weaviate.NewDocumentIndex(weaviate.NewSDK(wc), viper.GetString("weaviate.class"))
	if err := index.EnsureSchema(ctx); err != nil {
		fmt.Printf("Failed to provision vector index schema: %v\n", err)
		return
	}

	documents, err := semanticindex.NewService(embedder, index)
	if err != nil {
		fmt.Printf("Failed to create semantic index service: %v\n", err)
		return
	}

	var resumeTotal, resumeIndexed int
	bar := progressbar.Default(-1, "reindexing resumes")
	for offset := 0; ; offset += reindexPageSize {
		resumes, err := resumeService.List(ctx, offset, reindexPageSize)
		if err != nil {
			fmt.Printf("Failed to list resumes: %v\n", err)
			return
		}
		if len(resumes) == 0 {
			break
		}
		for _, resume := range resumes {
			resumeTotal++
			if documents.StoreResume(ctx, resume.ID, resume.UserID, resume.Content,
				map[string]interface{}{"title": resume.Title}) {
				resumeIndexed++
			}
			bar.Add(1)
		}
	}
	bar.Finish()

	var jobTotal, jobIndexed int
	bar = progressbar.Default(-1, "reindexing jobs")
	for offset := 0; ; offset += reindexPageSize {
		jobs, err := jobService.List(ctx, offset, reindexPageSize)
		if err != nil {
			fmt.Printf("Failed to list jobs: %v\n", err)
			return
		}
		if len(jobs) == 0 {
			break
		}
		for _, job := range jobs {
			jobTotal++
			if documents.StoreJob(ctx, job.ID, job.UserID, job.Description,
				map[string]interface{}{"title": job.Title, "company": job.Company}) {
				jobIndexed++
			}
			bar.Add(1)
		}
	}
	bar.Finish()

	fmt.Printf("Reindex complete: %d/%d resumes, %d/%d jobs\n",
		resumeIndexed, resumeTotal, jobIndexed, jobTotal)
}
