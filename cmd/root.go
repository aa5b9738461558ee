package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "stayseeker"

	defaultCurrency   = "USD"
	defaultLanguage   = "en-gb"
	defaultMaxResults = 10
)

type Config struct {
	SearchQuery       string    `mapstructure:"search-query"`
	Currency          string    `mapstructure:"currency"`
	Language          string    `mapstructure:"language"`
	MaxResults        int       `mapstructure:"max-results"`
	MinimumMatchScore float64   `mapstructure:"minimum-match-score"`
	Output            string    `mapstructure:"output"`
	TokenFile         string    `mapstructure:"token-file"`
	AI                *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "stayseeker is a simple cli for searching accommodation on Booking.com from a free-text travel query",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "APIFY_TOKEN_FILE"); err != nil {
		log.Fatalf("binding APIFY_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is stayseeker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// API tokens may live in a .env next to the config. Missing file is fine.
	_ = godotenv.Load()

	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config != nil {
		applyConfigDefaults(config)
	}

	return config, nil
}

// applyConfigDefaults fills in the result-shaping options the host always
// supplies to the pipeline, even when the config file leaves them out.
func applyConfigDefaults(config *Config) {
	if config.Currency == "" {
		config.Currency = defaultCurrency
	}
	if config.Language == "" {
		config.Language = defaultLanguage
	}
	if config.MaxResults <= 0 {
		config.MaxResults = defaultMaxResults
	}
}
