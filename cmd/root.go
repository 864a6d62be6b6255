package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/evalstore"
	"github.com/huangsam/appraise/internal/roster"
	"github.com/huangsam/appraise/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the global evaluation store manager instance.
var storeManager contract.StoreManager

// rosterSource supplies the assignees and tasks for every command.
var rosterSource contract.RosterSource

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "appraise",
	Short: "Score tasks and rank assignees for a performance evaluation period.",
	Long: `Appraise turns raw task metrics and evaluator scores into weighted results,
grades and rankings for each evaluation period.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setConfigSource points viper at the --config file or the default search paths.
func setConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".appraise") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigSource()

	viper.SetEnvPrefix("APPRAISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.BlobBackend)
	viper.SetDefault("color", "yes")
	viper.SetDefault("ai-backend", schema.GeminiFeedback)
	viper.SetDefault("gemini-model", contract.DefaultGeminiModel)
	viper.SetDefault("ai-rate", contract.DefaultFeedbackRate)
	viper.SetDefault("default-qualitative", schema.DefaultQualitativeScore)
	viper.SetDefault("limit", 0)
}

// sharedSetup unmarshals config, runs validation and opens the store and roster.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize persistence layer with validated config
	if err := evalstore.InitStores(cfg.StoreBackend, cfg.StorePath); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	// 5. Load the roster
	src, err := roster.Open(cfg.RosterFile)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	rosterSource = src
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// readConfigFile loads the config file when present. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigSource()
	return readConfigFile()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the global store manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}
