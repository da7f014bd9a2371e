package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/govscout/tender-scout/internal/ai/gemini"
	"github.com/govscout/tender-scout/internal/logger"
	"github.com/govscout/tender-scout/internal/pipeline"
	"github.com/govscout/tender-scout/internal/portals"
	"github.com/govscout/tender-scout/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultNavTimeout = 30 * time.Second

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Search tenders once for a company description and print the report",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("source", "s", "", "tender source strategy: static or live")
	runCmd.Flags().Bool("fetch-documents", false, "prefetch linked tender pages before extraction")

	viper.BindPFlag("source.strategy", runCmd.Flags().Lookup("source"))
	viper.BindPFlag("source.fetch-documents", runCmd.Flags().Lookup("fetch-documents"))
}

// run is the one-shot search command.
func run(_ *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the tender-scout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query, err = promptQuery()
		if err != nil {
			logger.Fatal("reading company description", zap.Error(err))
		}
	}

	p, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	fmt.Println(p.Run(ctx, query))
}

var queryPrompt = promptui.Prompt{
	Label: "Describe your company (name, industry, location, budget)",
	Validate: func(input string) error {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("description must not be empty")
		}
		return nil
	},
}

func promptQuery() (string, error) {
	return queryPrompt.Run()
}

// buildPipeline wires the source strategy and the Gemini-backed components
// from the configuration. Shared by the run and serve commands.
func buildPipeline(ctx context.Context, config *Config, log *zap.Logger) (*pipeline.Pipeline, error) {
	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(log, "gemini", config.AI.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithCommonFields(log, "gemini", generator.Model())
	maxLogLength := config.AI.Gemini.MaxLogLength

	source, err := buildSource(config.Source, log)
	if err != nil {
		return nil, err
	}

	deps := pipeline.Deps{
		Source:     source,
		Enricher:   gemini.NewEnricher(generator, maxLogLength, aiLogger),
		Scorer:     gemini.NewScorer(generator, maxLogLength, aiLogger),
		Summarizer: gemini.NewSummarizer(generator, maxLogLength, aiLogger),
		Logger:     log,
	}

	if config.Source.FetchDocuments {
		deps.Fetcher = portals.NewFetcher(log)
	}

	return pipeline.New(deps), nil
}

func buildSource(config *SourceConfig, log *zap.Logger) (portals.Source, error) {
	strategy := strings.TrimSpace(strings.ToLower(config.Strategy))

	switch strategy {
	case "", "static":
		return portals.NewStatic(log), nil
	case "live":
		navTimeout := defaultNavTimeout
		if config.NavTimeout > 0 {
			navTimeout = config.NavTimeout
		}

		factory := func(ctx context.Context) (portals.Browser, error) {
			return portals.NewChromeBrowser(ctx, navTimeout)
		}

		return portals.NewLive(factory, log), nil
	default:
		return nil, fmt.Errorf("unsupported source strategy: %s", config.Strategy)
	}
}
