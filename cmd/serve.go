package cmd

import (
	"context"
	"log"

	"github.com/devanksh/jobfinder/internal/logger"
	"github.com/devanksh/jobfinder/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", ":8080", "address to listen on")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting jobfinder", zap.String("version", version))

	pipe, err := buildPipeline(ctx, config, zlog)
	if err != nil {
		zlog.Fatal(
			"building the pipeline",
			zap.Error(err),
			zap.String("hint", "set SERPAPI_KEY_FILE environment variable or the 'search.api-key-file' key in the configuration file"),
		)
	}

	srv := server.New(pipe, zlog)
	if err := srv.Run(viper.GetString("listen")); err != nil {
		zlog.Fatal("serving http", zap.Error(err))
	}
}
