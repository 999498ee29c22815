package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ashutoshrp06/vragent/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create configuration",
	Long:  "View current configuration or create a default config file.",
	RunE:  runConfig,
}

var (
	configInit bool
	configShow bool
)

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Create default config file")
	configCmd.Flags().BoolVar(&configShow, "show", true, "Show current configuration")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configInit {
		return initConfig()
	}
	if configShow {
		return showConfig()
	}
	return nil
}

func initConfig() error {
	path := "config.yaml"
	if configPath != "" {
		path = configPath
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Println(styles.Warning.Render(path + " already exists. Use --show to view it."))
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		printError("Failed to create config", err)
		return err
	}

	fmt.Println(styles.Success.Render("Created " + path + " with default settings."))
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - Ollama URL, model and timeouts")
	fmt.Println("  - HTTP listen address")
	fmt.Println("  - A custom actions file")
	return nil
}

func showConfig() error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(styles.Warning.Render(fmt.Sprintf("Could not load config (%v). Showing defaults:\n", err)))
		cfg = config.DefaultConfig()
	} else {
		fmt.Println(styles.Heading.Render("Current Configuration:\n"))
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Println(string(data))

	fmt.Println(styles.Muted.Render("Config file locations (in order of precedence):"))
	for i, p := range config.DefaultPaths() {
		fmt.Printf("  %d. %s\n", i+1, p)
	}
	fmt.Println(styles.Muted.Render(fmt.Sprintf("Environment overrides use the %s_ prefix, e.g. %s_OLLAMA_MODEL", config.EnvPrefix, config.EnvPrefix)))
	return nil
}
