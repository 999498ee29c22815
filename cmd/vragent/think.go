package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashutoshrp06/vragent/internal/types"
)

var (
	thinkSession string
	thinkJSON    bool
)

var thinkCmd = &cobra.Command{
	Use:   "think [request.json]",
	Short: "Run one reasoning step",
	Long: `Run one reasoning step from a turn request in JSON, read from a file
or from stdin when no file (or "-") is given.

Examples:
  vragent think turn.json
  cat turn.json | vragent think --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThink,
}

func init() {
	thinkCmd.Flags().StringVar(&thinkSession, "session", "", "Session ID (overrides the request)")
	thinkCmd.Flags().BoolVar(&thinkJSON, "json", false, "Print the raw turn result as JSON")
}

func runThink(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			printError("Failed to open request", err)
			return err
		}
		defer f.Close()
		in = f
	}

	req, err := readTurnRequest(in)
	if err != nil {
		printError("Failed to read request", err)
		return err
	}
	if thinkSession != "" {
		req.SessionID = thinkSession
	}

	a, _, logger, err := initAgent()
	if err != nil {
		printError("Failed to start", err)
		return err
	}
	defer logger.Sync()

	result := a.Think(context.Background(), req)

	if thinkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.RenderTurn(result))
	return nil
}

func readTurnRequest(r io.Reader) (types.TurnRequest, error) {
	var req types.TurnRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return types.TurnRequest{}, fmt.Errorf("decode turn request: %w", err)
	}
	return req, nil
}
