package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/r7l-labs/interim-builds/internal/buildindex"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const configFile = "buildindex.yml"

func main() {
	logger := setupLogger()
	defer logger.Sync()

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger() *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	))
}

func run(log *zap.Logger) error {
	cfg, err := buildindex.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	summary, err := buildindex.Run(cfg, log)
	if err != nil {
		return err
	}

	printSummary(cfg, summary)

	if summary.Failed() {
		return errors.New("completed with errors, see output above")
	}
	return nil
}

func printSummary(cfg buildindex.Config, s *buildindex.Summary) {
	n := len(s.Builds)
	fmt.Printf("Found %d build %s\n", n, buildindex.Pluralize(n, "directory", "directories"))
	if n > 0 {
		fmt.Printf("Next build ID will be: %s\n", s.NextID)
	}

	for _, id := range s.Generated {
		fmt.Printf("Generated: %s\n", filepath.Join(cfg.BuildsDir, id, cfg.PageName))
	}
	for _, id := range s.Skipped {
		fmt.Printf("Skipped: %s (already exists)\n", filepath.Join(cfg.BuildsDir, id, cfg.PageName))
	}
	for _, err := range s.PageErrs {
		fmt.Printf("Error: %v\n", err)
	}

	if s.IndexErr != nil {
		fmt.Printf("Error: %v\n", s.IndexErr)
	} else {
		fmt.Printf("Updated: %s\n", cfg.IndexFile)
	}

	fmt.Printf("\nOpen %s in a browser to view.\n", cfg.IndexFile)
	fmt.Printf("\nTo add a new build:\n")
	fmt.Printf("  1. Create directory: %s\n", filepath.Join(cfg.BuildsDir, s.NextID))
	fmt.Printf("  2. Upload %s files to that directory\n", cfg.ArtifactExt)
	fmt.Printf("  3. Re-run this tool\n")
}
