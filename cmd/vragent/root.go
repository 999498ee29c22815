package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ashutoshrp06/vragent/internal/agent"
	"github.com/ashutoshrp06/vragent/internal/config"
	"github.com/ashutoshrp06/vragent/internal/ui"
)

var (
	configPath string
	verbose    bool
	ollamaURL  string
	modelName  string
)

var styles = ui.DefaultStyles()

var rootCmd = &cobra.Command{
	Use:   "vragent",
	Short: "Reasoning bridge for an embodied VR agent",
	Long: `vragent turns world scans from a VR simulator into actions chosen by a
local Ollama model, one reasoning step at a time.

Usage:
  vragent serve                    # HTTP API on :8000
  vragent think request.json       # run one turn from a file
  vragent health                   # check Ollama and the configured model`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&ollamaURL, "ollama-url", "", "Ollama base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Ollama model (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(thinkCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromPaths(config.DefaultPaths()...)
	}
	if err != nil {
		return nil, err
	}

	if err := applyOverrides(cfg, ollamaURL, modelName); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides sets non-empty flag values and validates the result.
func applyOverrides(cfg *config.Config, url, model string) error {
	if url != "" {
		cfg.Ollama.URL = url
	}
	if model != "" {
		cfg.Ollama.Model = model
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid command-line override: %w", err)
	}
	return nil
}

func createLogger(cfg *config.Config) *zap.Logger {
	if verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}

	zcfg := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// initAgent loads config and returns a ready agent with its logger.
func initAgent() (*agent.Agent, *config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := createLogger(cfg)

	a, err := agent.New(agent.Config{
		AppConfig: cfg,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize agent: %w", err)
	}
	return a, cfg, logger, nil
}

func printError(msg string, err error) {
	fmt.Fprintln(os.Stderr, styles.Error.Render(fmt.Sprintf("Error: %s: %v", msg, err)))
}

func printConnectionHelp(cfg *config.Config) {
	fmt.Println(styles.Error.Render("Could not connect to Ollama at " + cfg.Ollama.URL))
	fmt.Println()
	fmt.Println(styles.Muted.Render("Make sure Ollama is running:"))
	fmt.Println(styles.Command.Render("  ollama serve"))
	fmt.Println()
	fmt.Println(styles.Muted.Render("Or point vragent at a different endpoint:"))
	fmt.Println(styles.Command.Render("  vragent --ollama-url http://host:11434 ..."))
}
