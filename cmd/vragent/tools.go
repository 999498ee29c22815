package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashutoshrp06/vragent/internal/config"
	"github.com/ashutoshrp06/vragent/internal/functions"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available actions",
	Long: `List the actions the model may call each turn.

Examples:
  vragent tools           # List all actions
  vragent tools --verbose # Show parameters`,
	RunE: runTools,
}

func runTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	registry := functions.Default()
	if cfg.Agent.ActionsPath != "" {
		registry, err = functions.LoadRegistry(cfg.Agent.ActionsPath)
		if err != nil {
			printError("Failed to load actions", err)
			return err
		}
	}

	fmt.Print(styles.RenderActions(registry.Definitions(), verbose))
	return nil
}
