package cmd

import "github.com/spf13/viper"

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for PostgreSQL
	viper.BindEnv("postgres.host", "POSTGRES_HOST")
	viper.BindEnv("postgres.port", "POSTGRES_PORT")
	viper.BindEnv("postgres.user", "POSTGRES_USER")
	viper.BindEnv("postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("postgres.db", "POSTGRES_DB")

	// Map environment variables to Viper keys for the vector index and
	// embedding provider
	viper.BindEnv("weaviate.url", "WEAVIATE_URL")
	viper.BindEnv("weaviate.class", "WEAVIATE_CLASS")
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.BindEnv("embedding.model", "EMBEDDING_MODEL")
	viper.BindEnv("embedding.dimension", "VECTOR_DIMENSION")

	// Map environment variables to Viper keys for web search and the server
	viper.BindEnv("tavily.url", "TAVILY_URL")
	viper.BindEnv("tavily.api_key", "TAVILY_API_KEY")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Set default values for PostgreSQL
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.db", "resumatch")

	// Set default values for the vector index and embedding provider
	viper.SetDefault("weaviate.url", "localhost:8080")
	viper.SetDefault("weaviate.class", "TailorDocument")
	viper.SetDefault("ollama.url", "http://localhost:11434/api")
	viper.SetDefault("embedding.model", "nomic-embed-text")
	viper.SetDefault("embedding.dimension", 768)

	// Set default values for web search and the server
	viper.SetDefault("tavily.url", "https://api.tavily.com")
	viper.SetDefault("tavily.api_key", "")
	// Weaviate's canonical port is 8080, so the server defaults elsewhere
	viper.SetDefault("server.port", "8090")
	viper.SetDefault("server.shutdown_timeout", "5s")
}
