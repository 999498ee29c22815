package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashutoshrp06/vragent/internal/agent"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check Ollama connectivity and model availability",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	a, cfg, logger, err := initAgent()
	if err != nil {
		printError("Failed to start", err)
		return err
	}
	defer logger.Sync()

	fmt.Print(styles.Warning.Render("Checking Ollama... "))
	report := a.Health(context.Background())

	switch report.Status {
	case agent.HealthOK:
		fmt.Println(styles.Success.Render("✓"))
	case agent.HealthWarning:
		fmt.Println(styles.Warning.Render("!"))
	default:
		fmt.Println(styles.Error.Render("✗"))
		fmt.Println()
		printConnectionHelp(cfg)
		return errors.New(report.Message)
	}

	fmt.Printf("%s %s\n", styles.Muted.Render("LLM:      "), styles.Command.Render(a.LLMInfo()))
	fmt.Printf("%s %s\n", styles.Muted.Render("Installed:"), strings.Join(report.InstalledModels, ", "))
	fmt.Println(report.Message)
	return nil
}
