package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "resumatch",
	Short: "Semantic matching service for resumes and job descriptions",
	Long: `resumatch indexes resumes and job descriptions as vector embeddings
and serves owner-scoped semantic search, job-to-resume matching, keyword
extraction and web-evidence skill recommendations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	settingDefaultConfig()
}
