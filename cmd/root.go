package cmd

import (
	"context"
	"log"
	"time"

	"github.com/devanksh/jobfinder/internal/ai"
	"github.com/devanksh/jobfinder/internal/ai/gemini"
	"github.com/devanksh/jobfinder/internal/ai/ollama"
	"github.com/devanksh/jobfinder/internal/logger"
	"github.com/devanksh/jobfinder/internal/pipeline"
	"github.com/devanksh/jobfinder/internal/resume"
	"github.com/devanksh/jobfinder/internal/search"
	"github.com/devanksh/jobfinder/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "jobfinder"
)

type Config struct {
	Region             string        `mapstructure:"region"`
	MaxResultsPerQuery int           `mapstructure:"max-results-per-query"`
	MaxJobs            int           `mapstructure:"max-jobs"`
	Vocabulary         []string      `mapstructure:"vocabulary"`
	Search             *SearchConfig `mapstructure:"search"`
	AI                 *AIConfig     `mapstructure:"ai"`
}

type SearchConfig struct {
	APIKeyFile string        `mapstructure:"api-key-file"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	Ollama   *OllamaConfig `mapstructure:"ollama"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type OllamaConfig struct {
	URL   string `mapstructure:"url"`
	Model string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfinder turns a resume into a ranked list of job recommendations",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("search.api-key-file", "SERPAPI_KEY_FILE"); err != nil {
		log.Fatalf("binding SERPAPI_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfinder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run and serve commands.
	if runCmd.CalledAs() == "" && serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicitly given config file parsed with error.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// Without a config file everything can still come from flags and env.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// buildPipeline assembles the search client, the optional refiner and the
// resume extractor into a ready-to-run pipeline.
func buildPipeline(ctx context.Context, config *Config, zlog *zap.Logger) (*pipeline.Pipeline, error) {
	apiKeyFile := viper.GetString("search.api-key-file")
	if config.Search != nil && config.Search.APIKeyFile != "" {
		apiKeyFile = config.Search.APIKeyFile
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "serpapi api key",
		File: apiKeyFile,
	})
	if err != nil {
		return nil, err
	}

	client := search.New(zlog, apiKey, config.Region)
	if config.Search != nil && config.Search.Timeout > 0 {
		client.HTTPClient.Timeout = config.Search.Timeout
	}

	refiner := newRefiner(ctx, config.AI, zlog)
	extractor := resume.NewExtractor(config.Vocabulary, refiner, zlog)

	opts := pipeline.Options{
		MaxResultsPerQuery: config.MaxResultsPerQuery,
		MaxJobs:            config.MaxJobs,
	}
	if config.Search != nil {
		opts.SearchTimeout = config.Search.Timeout
	}
	if config.AI != nil {
		opts.RefineTimeout = config.AI.Timeout
	}

	return pipeline.New(client, extractor, zlog, opts), nil
}

// newRefiner returns nil when refinement is disabled or misconfigured: a
// missing AI collaborator degrades extraction, it never blocks searching.
func newRefiner(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) ai.Refiner {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	switch cfg.Provider {
	case "", "ollama":
		var url, model string
		if cfg.Ollama != nil {
			url = cfg.Ollama.URL
			model = cfg.Ollama.Model
		}
		client := ollama.New(url, model, logger.WithProvider(zlog, "ollama", model))
		return client

	case "gemini":
		if cfg.Gemini == nil {
			zlog.Warn("skipping resume refinement", zap.String("reason", "gemini configuration is required when provider is gemini"))
			return nil
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			zlog.Warn("skipping resume refinement",
				zap.Error(err),
				zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
			)
			return nil
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
		if err != nil {
			zlog.Warn("skipping resume refinement", zap.Error(err))
			return nil
		}

		refinerLogger := logger.WithProvider(zlog, "gemini", generator.Model())
		return gemini.NewRefiner(generator, refinerLogger, cfg.Gemini.MaxLogLength)

	default:
		zlog.Warn("skipping resume refinement", zap.String("reason", "unsupported ai provider"), zap.String("provider", cfg.Provider))
		return nil
	}
}
