// Package cmd defines the command-line interface for appraise.
package cmd

import (
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(inputCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the score subcommands to the parent score command
	scoreCmd.AddCommand(scoreTaskCmd)
	scoreCmd.AddCommand(scoreAssigneeCmd)

	// Add the input subcommands to the parent input command
	inputCmd.AddCommand(inputSetCmd)
	inputCmd.AddCommand(inputQualCmd)
	inputCmd.AddCommand(inputOpinionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("period", "p", "", "Evaluation period such as 2025-H1 (default: current half-year)")
	rootCmd.PersistentFlags().StringP("assignee", "a", "", "Assignee id to score")
	rootCmd.PersistentFlags().StringP("task", "t", "", "Task id to score or update")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns (1 or 2)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.BlobBackend), "Store backend: blob or sqlite or none")
	rootCmd.PersistentFlags().String("store-path", "", "Path of the store file (default: $HOME/.appraise.json or .appraise.db)")
	rootCmd.PersistentFlags().String("roster", "", "Path to a roster YAML file (default: built-in sample roster)")
	rootCmd.PersistentFlags().String("ai-backend", string(schema.GeminiFeedback), "Feedback backend: gemini or none")
	rootCmd.PersistentFlags().String("gemini-api-key", "", "Gemini API key (prefer APPRAISE_GEMINI_API_KEY)")
	rootCmd.PersistentFlags().String("gemini-model", contract.DefaultGeminiModel, "Gemini model name")
	rootCmd.PersistentFlags().Float64("ai-rate", contract.DefaultFeedbackRate, "Maximum feedback requests per minute")
	rootCmd.PersistentFlags().Float64("default-qualitative", schema.DefaultQualitativeScore, "Qualitative score seeded into new evaluations")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rankingCmd to Viper
	rankingCmd.Flags().IntP("limit", "l", 0, "Number of assignees to display (0 = everyone)")
	if err := viper.BindPFlags(rankingCmd.Flags()); err != nil {
		contract.LogFatal("Error binding ranking flags", err)
	}
	rankingCmd.Flags().String("parquet-file", "", "Also write the ranking to this Parquet file")

	// Header suppression is local to the score commands
	scoreCmd.PersistentFlags().Bool("no-header", false, "Do not print the subject/period header")

	// Bind all flags of storeExportCmd to Viper
	storeExportCmd.Flags().String("format", "json", "Export format: json or parquet")
	if err := viper.BindPFlags(storeExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store export flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
