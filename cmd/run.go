package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/stayseeker/stayseeker/internal/ai"
	"github.com/stayseeker/stayseeker/internal/ai/gemini"
	"github.com/stayseeker/stayseeker/internal/booking"
	"github.com/stayseeker/stayseeker/internal/logger"
	"github.com/stayseeker/stayseeker/internal/ranking"
	"github.com/stayseeker/stayseeker/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSave             = "Save results"
	PromptNo               = "No"
	PromptReportByLocation = "Report by location"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Store the results?",
	Items: []string{PromptSave, PromptNo, PromptReportByLocation},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the stayseeker main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "store results without asking for confirmation")
	runCmd.Flags().StringP("output", "o", "", "file to store the result records. Default is a temp file.")

	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the stayseeker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	query := strings.TrimSpace(config.SearchQuery)
	if query == "" {
		logger.Fatal(`missing "search-query" key in the configuration`)
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal(
			"loading apify token",
			zap.Error(err),
			zap.String("hint", "set the APIFY_TOKEN environment variable or the 'token-file' key in the configuration file"),
		)
	}

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building criteria extractor", zap.Error(err))
	}

	logger.Info("extracting search criteria", zap.String("query", query))

	criteria := extractor.Extract(ctx, query)
	criteria.ApplyOverrides(booking.Overrides{
		Currency:   config.Currency,
		Language:   config.Language,
		MaxResults: config.MaxResults,
	})

	if strings.TrimSpace(criteria.Location) == "" {
		logger.Fatal("could not determine a search location from the query",
			zap.String("query", query),
			zap.String("hint", "rephrase the query with an explicit destination"),
		)
	}

	logger.Info("starting the search",
		zap.String("location", criteria.Location),
		zap.String("currency", criteria.Currency),
		zap.Int("max_results", criteria.MaxResults),
	)

	client := booking.New(ctx, logger, token)

	listings, err := client.Search(criteria)
	if err != nil {
		logger.Fatal("searching listings", zap.Error(err))
	}

	if listings.Len() == 0 {
		logger.Warn("no listings found", zap.String("location", criteria.Location))
		if err := store(logger, listings); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	results := ranking.Rank(logger, listings, criteria, ranking.Options{
		MinScore: config.MinimumMatchScore,
	})

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no listings left after ranking"))
		return
	}

	logger.Info("best match",
		zap.String("name", results[0].Listing.Name),
		zap.Float64("score", results[0].Score),
	)

	ranked := ranking.ToListings(results)

	action := PromptSave
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of listings", zap.Int("count", ranked.Len()))

		if err := handleAction(action, logger, ranked); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, listings *booking.Listings) error {
	switch action {
	case PromptSave:
		if err := store(logger, listings); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByLocation:
		pretty, _ := json.MarshalIndent(listings.ReportByLocation(), "", "  ")
		logger.Info(string(pretty), zap.Int("listings count", listings.Len()))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func store(logger *zap.Logger, listings *booking.Listings) error {
	filename, err := listings.DumpToFile(viper.GetString("output"))
	if err != nil {
		return fmt.Errorf("store results: %w", err)
	}

	logger.Info("stored result records",
		zap.String("filename", filename),
		zap.Int("count", listings.Len()),
	)
	return nil
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "apify token",
		File: tokenFile,
		Env:  "APIFY_TOKEN",
	})
}

func newExtractor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Extractor, error) {
	gcfg := &GeminiConfig{}
	if cfg != nil {
		provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
		if provider != "" && provider != "gemini" {
			return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
		}
		if cfg.Gemini != nil {
			gcfg = cfg.Gemini
		}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gcfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", gcfg.Model),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewExtractor(generator, genLogger, gcfg.MaxLogLength), nil
}
