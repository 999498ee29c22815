package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashutoshrp06/vragent/internal/agent"
	"github.com/ashutoshrp06/vragent/internal/apiserver"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start the HTTP API the world simulator calls once per reasoning step.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "API server host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "API server port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, cfg, logger, err := initAgent()
	if err != nil {
		printError("Failed to start", err)
		return err
	}
	defer logger.Sync()

	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		printError("Invalid server address", err)
		return err
	}

	addr := cfg.ServerAddress()
	apiSrv := apiserver.NewServer(addr, a, logger)

	banner := color.New(color.FgCyan, color.Bold)
	banner.Println("VR Agent Backend")
	fmt.Printf("   API Server: http://%s\n", addr)
	fmt.Printf("   LLM:        %s\n", a.LLMInfo())
	fmt.Printf("   Health:     http://%s/health\n", addr)
	fmt.Println()

	checkCtx, checkCancel := context.WithTimeout(context.Background(), cfg.HealthTimeout())
	report := a.Health(checkCtx)
	checkCancel()
	switch report.Status {
	case agent.HealthOK:
		color.Green("   %s", report.Message)
	case agent.HealthWarning:
		color.Yellow("   %s", report.Message)
	default:
		color.Red("   %s", report.Message)
	}
	fmt.Println()

	errCh := make(chan error, 1)
	go func() {
		if err := apiSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("API server error", zap.Error(err))
		return err
	}

	fmt.Println()
	logger.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", zap.Error(err))
	}

	logger.Info("vragent stopped")
	return nil
}
