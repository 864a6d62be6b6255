package contract

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"github.com/huangsam/appraise/core/algo"
	"github.com/huangsam/appraise/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultGeminiModel  = "gemini-3-flash-preview"
	DefaultFeedbackRate = 10.0 // requests per minute
	MaxResultLimit      = 1000
)

// Config holds the runtime configuration for an evaluation session.
// This struct is the "final, validated" config.
type Config struct {
	Period     string
	AssigneeID string
	TaskID     string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Limit      int // Ranking limit (0 = everyone)
	UseColors  bool

	StoreBackend schema.StoreBackend
	StorePath    string

	RosterFile string

	FeedbackBackend schema.FeedbackBackend
	GeminiAPIKey    string // Please use env var as this is plaintext
	GeminiModel     string
	FeedbackRate    float64

	DefaultQualitative float64

	// CustomWeights is a mapping of [MetricID] = Weight from the config file
	CustomWeights map[string]float64

	// Rules is the rule book computed from defaults + custom weights
	Rules algo.RuleBook
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Period       string `mapstructure:"period"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
	StoreBackend string `mapstructure:"store-backend"`
	StorePath    string `mapstructure:"store-path"`
	Roster       string `mapstructure:"roster"`

	// --- Fields from subcommand flags ---
	Assignee string `mapstructure:"assignee"`
	Task     string `mapstructure:"task"`
	Limit    int    `mapstructure:"limit"`

	// --- Feedback settings ---
	AIBackend    string  `mapstructure:"ai-backend"`
	GeminiAPIKey string  `mapstructure:"gemini-api-key"`
	GeminiModel  string  `mapstructure:"gemini-model"`
	AIRate       float64 `mapstructure:"ai-rate"`

	DefaultQualitative float64 `mapstructure:"default-qualitative"`

	// --- Custom weights from config file ---
	Weights map[string]float64 `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[string]float64, len(c.CustomWeights))
		maps.Copy(clone.CustomWeights, c.CustomWeights)
	}
	return &clone
}

// CloneWithSelection creates a copy of the Config pointing at another assignee and task.
func (c *Config) CloneWithSelection(assigneeID, taskID string) *Config {
	clone := c.Clone()
	clone.AssigneeID = assigneeID
	clone.TaskID = taskID
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	if err := validateFeedbackConfig(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the selection and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Period = strings.TrimSpace(input.Period)
	if cfg.Period == "" {
		cfg.Period = CurrentPeriod(time.Now())
	}
	cfg.AssigneeID = strings.TrimSpace(input.Assignee)
	cfg.TaskID = strings.TrimSpace(input.Task)
	cfg.OutputFile = input.OutputFile
	cfg.RosterFile = input.Roster
	cfg.Width = input.Width

	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	useColors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = useColors

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Precision = input.Precision
	if cfg.Precision == 0 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Precision < 1 || cfg.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, xlsx", input.Output)
	}
	if cfg.Output == schema.XLSXOut && cfg.OutputFile == "" {
		return fmt.Errorf("xlsx output requires --output-file")
	}

	qual := input.DefaultQualitative
	if qual == 0 {
		qual = schema.DefaultQualitativeScore
	}
	cfg.DefaultQualitative = schema.Clamp(qual, schema.MinScore, schema.MaxScore)
	return nil
}

// validateStoreConfig validates the evaluation store backend and resolves its path.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.BlobBackend
	}
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be blob, sqlite, none", input.StoreBackend)
	}
	cfg.StorePath = input.StorePath
	if cfg.StorePath == "" && cfg.StoreBackend != schema.NoneBackend {
		cfg.StorePath = GetStoreFilePath(cfg.StoreBackend)
	}
	return nil
}

// validateFeedbackConfig validates the feedback backend and its rate limit.
func validateFeedbackConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.FeedbackBackend = schema.FeedbackBackend(strings.ToLower(input.AIBackend))
	if cfg.FeedbackBackend == "" {
		cfg.FeedbackBackend = schema.GeminiFeedback
	}
	if _, ok := schema.ValidFeedbackBackends[cfg.FeedbackBackend]; !ok {
		return fmt.Errorf("invalid ai backend '%s'. must be gemini, none", input.AIBackend)
	}
	cfg.GeminiAPIKey = input.GeminiAPIKey
	cfg.GeminiModel = input.GeminiModel
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	cfg.FeedbackRate = input.AIRate
	if cfg.FeedbackRate == 0 {
		cfg.FeedbackRate = DefaultFeedbackRate
	}
	if cfg.FeedbackRate < 0 {
		return fmt.Errorf("ai-rate must be positive (received %.2f)", input.AIRate)
	}
	return nil
}

// ProcessWeightsRawInput validates the custom weights against the default rule book.
// Unknown metric ids and weights outside [0, 100] are rejected.
func ProcessWeightsRawInput(weights map[string]float64) (map[string]float64, error) {
	if len(weights) == 0 {
		return nil, nil
	}
	defaults := algo.DefaultRuleBook()
	result := make(map[string]float64, len(weights))
	for id, w := range weights {
		key := strings.ToLower(strings.TrimSpace(id))
		if !defaults.HasRule(key) {
			return nil, fmt.Errorf("weight for %q: %w", id, ErrUnknownMetric)
		}
		if math.IsNaN(w) || w < 0 || w > 100 {
			return nil, fmt.Errorf("weight for %s must be between 0 and 100 (received %.2f)", key, w)
		}
		result[key] = w
	}
	return result, nil
}

// processCustomWeights builds the rule book. A rule set whose weights do not add up
// to 100 is kept as is, with a warning.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights
	cfg.Rules = algo.DefaultRuleBook().WithWeights(weights)

	for _, t := range cfg.Rules.TaskTypes() {
		if sum := algo.WeightSum(cfg.Rules.For(t)); math.Abs(sum-100) > 1e-9 {
			LogWarn("Custom weights", fmt.Errorf("%s rule weights sum to %.2f, not 100", t, sum))
		}
	}
	return nil
}
