package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/devanksh/jobfinder/internal/logger"
	"github.com/devanksh/jobfinder/internal/pipeline"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptPrintReport = "Print report"
	PromptDumpToFile  = "Dump recommendations to file"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrintReport, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline once for a resume file",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (.pdf or .docx)")
	runCmd.Flags().StringP("output", "o", "", "write the report JSON to this path instead of prompting")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the report without prompting")
}

// run is the one-shot CLI mode of the pipeline.
func run(cmd *cobra.Command) {
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

	resumePath := cmd.Flag("resume").Value.String()
	if resumePath == "" {
		zlog.Fatal("resume file is required", zap.String("hint", "pass it with --resume"))
	}

	// Total inability to read the file is the only fatal input error.
	if _, err := os.Stat(resumePath); err != nil {
		zlog.Fatal("reading resume file", zap.String("path", resumePath), zap.Error(err))
	}

	pipe, err := buildPipeline(ctx, config, zlog)
	if err != nil {
		zlog.Fatal(
			"building the pipeline",
			zap.Error(err),
			zap.String("hint", "set SERPAPI_KEY_FILE environment variable or the 'search.api-key-file' key in the configuration file"),
		)
	}

	report := pipe.Run(ctx, resumePath)

	if output := cmd.Flag("output").Value.String(); output != "" {
		if err := writeReport(report, output); err != nil {
			zlog.Fatal("writing report", zap.Error(err))
		}
		zlog.Info("report written", zap.String("path", output))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		printReport(report)
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, report, zlog); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, report *pipeline.Report, zlog *zap.Logger) error {
	switch action {
	case PromptPrintReport:
		printReport(report)
		return nil
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(report)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		zlog.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		zlog.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printReport(report *pipeline.Report) {
	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(pretty))
}

func writeReport(report *pipeline.Report, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func dumpToTmpFile(report *pipeline.Report) (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", err
	}
	return file.Name(), nil
}
