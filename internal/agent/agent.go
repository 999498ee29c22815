// Package agent implements the turn controller that bridges the world
// simulator and the chat backend.
package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ashutoshrp06/vragent/internal/config"
	"github.com/ashutoshrp06/vragent/internal/functions"
	"github.com/ashutoshrp06/vragent/internal/llm"
	"github.com/ashutoshrp06/vragent/internal/ollama"
	"github.com/ashutoshrp06/vragent/internal/session"
	"github.com/ashutoshrp06/vragent/internal/types"
	"github.com/ashutoshrp06/vragent/internal/validator"
	"go.uber.org/zap"
)

// Backend is the chat backend a turn is sent to. *ollama.Client implements it.
type Backend interface {
	Chat(ctx context.Context, messages []types.Message, tools []ollama.Tool) (*ollama.ChatResponse, error)
	ListModels(ctx context.Context) ([]string, error)
	Model() string
	BaseURL() string
}

// Agent runs reasoning turns. It is safe for concurrent use: turns on the
// same session are serialised, turns on different sessions are not.
type Agent struct {
	registry        *functions.Registry
	tools           []ollama.Tool
	backend         Backend
	sessions        *session.Manager
	inputValidator  *validator.InputValidator
	outputValidator *validator.OutputValidator
	chatTimeout     time.Duration
	healthTimeout   time.Duration
	logger          *zap.Logger
}

// Config holds agent configuration.
type Config struct {
	AppConfig *config.Config
	Registry  *functions.Registry // nil loads AppConfig.Agent.ActionsPath or the embedded set
	Backend   Backend             // nil builds an Ollama client from AppConfig
	Sessions  *session.Manager
	Logger    *zap.Logger

	// ChatTimeout overrides AppConfig's bounded wait for one backend call.
	ChatTimeout time.Duration
}

// New creates a new agent with all components initialized.
func New(cfg Config) (*Agent, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.AppConfig == nil {
		cfg.AppConfig = config.DefaultConfig()
	}

	if cfg.Registry == nil {
		if path := cfg.AppConfig.Agent.ActionsPath; path != "" {
			registry, err := functions.LoadRegistry(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load action registry: %w", err)
			}
			cfg.Registry = registry
		} else {
			cfg.Registry = functions.Default()
		}
	}

	if cfg.Backend == nil {
		cfg.Backend = ollama.NewClient(cfg.AppConfig.OllamaClientConfig())
	}

	if cfg.Sessions == nil {
		cfg.Sessions = session.NewManager()
	}

	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = cfg.AppConfig.ChatTimeout()
	}

	return &Agent{
		registry:        cfg.Registry,
		tools:           ollama.ToolsFromDefinitions(cfg.Registry.Definitions()),
		backend:         cfg.Backend,
		sessions:        cfg.Sessions,
		inputValidator:  validator.NewInputValidator(),
		outputValidator: validator.NewOutputValidator(cfg.Registry),
		chatTimeout:     cfg.ChatTimeout,
		healthTimeout:   cfg.AppConfig.HealthTimeout(),
		logger:          cfg.Logger,
	}, nil
}

// Think runs one reasoning step. It always returns a well-formed result:
// backend and request failures come back as a diagnostic thought with no
// actions and done=false.
func (a *Agent) Think(ctx context.Context, req types.TurnRequest) (result types.TurnResult) {
	if err := a.inputValidator.Validate(req); err != nil {
		return a.degrade(ReasonInvalidRequest, err, zap.String("session", req.SessionID))
	}
	req = a.inputValidator.Sanitize(req)

	sess, release := a.sessions.Acquire(req.SessionID)
	defer release()

	fields := []zap.Field{zap.String("session", sess.ID), zap.Int("step", req.Step)}
	defer func() {
		if r := recover(); r != nil {
			result = a.degrade(ReasonUnexpected, fmt.Errorf("panic: %v", r), fields...)
		}
	}()

	conv := sess.Conversation
	if req.Step == 0 {
		conv.Reset()
	}

	conv.Append(types.Message{
		Role:    types.RoleUser,
		Content: llm.BuildTurnContext(req.Goal, req.Step, req.AgentState, req.WorldState.Objects),
	})

	history := conv.Snapshot()
	messages := make([]types.Message, 0, len(history)+1)
	messages = append(messages, types.Message{Role: types.RoleSystem, Content: a.registry.SystemPrompt()})
	messages = append(messages, history...)

	a.logger.Debug("Sending turn",
		append(fields, zap.Int("messages", len(messages)), zap.Int("objects", len(req.WorldState.Objects)))...)

	// A started backend call runs to completion or to chatTimeout, even if
	// the caller goes away.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.chatTimeout)
	defer cancel()

	start := time.Now()
	resp, err := a.backend.Chat(callCtx, messages, a.tools)
	if err != nil {
		return a.degrade(classify(err), err, append(fields, zap.Duration("elapsed", time.Since(start)))...)
	}

	interp := a.outputValidator.Interpret(resp.Message)

	reply := resp.Message
	if reply.Role == "" {
		reply.Role = types.RoleAssistant
	}
	conv.Append(reply)

	for _, act := range interp.Actions {
		if act.Warning != "" {
			a.logger.Warn("Action arguments did not validate",
				append(fields, zap.String("function", act.Function), zap.String("warning", act.Warning))...)
		}
	}

	a.logger.Info("Turn completed",
		append(fields,
			zap.Int("actions", len(interp.Actions)),
			zap.Bool("done", interp.Done),
			zap.Duration("elapsed", time.Since(start)))...)

	return types.TurnResult{
		Thought: interp.Thought,
		Actions: interp.Actions,
		Done:    interp.Done,
	}
}

// HealthReport describes backend reachability and model availability.
type HealthReport struct {
	Status          string   `json:"status"` // ok, warning or error
	ConfiguredModel string   `json:"configured_model"`
	ModelAvailable  bool     `json:"model_available"`
	InstalledModels []string `json:"installed_models"`
	Message         string   `json:"message"`
}

const (
	HealthOK      = "ok"
	HealthWarning = "warning"
	HealthError   = "error"
)

// Health checks that the backend answers and has the configured model.
func (a *Agent) Health(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, a.healthTimeout)
	defer cancel()

	model := a.backend.Model()
	report := HealthReport{
		ConfiguredModel: model,
		InstalledModels: []string{},
	}

	models, err := a.backend.ListModels(ctx)
	if err != nil {
		report.Status = HealthError
		if errors.Is(err, ollama.ErrUnreachable) {
			report.Message = "Cannot connect to Ollama! Run 'ollama serve' first."
		} else {
			report.Message = fmt.Sprintf("Ollama health check failed: %v", err)
		}
		a.logger.Warn("Health check failed", zap.Error(err))
		return report
	}

	report.InstalledModels = models
	report.ModelAvailable = slices.Contains(models, model)
	if report.ModelAvailable {
		report.Status = HealthOK
		report.Message = fmt.Sprintf("Model '%s' ready", model)
	} else {
		report.Status = HealthWarning
		report.Message = fmt.Sprintf("Model '%s' NOT FOUND, run: ollama pull %s", model, model)
	}
	return report
}

// Actions returns the action definitions offered to the model, in order.
func (a *Agent) Actions() []types.ActionDefinition {
	return a.registry.Definitions()
}

// NewSession creates an empty session and returns its ID.
func (a *Agent) NewSession() string {
	id := a.sessions.Create()
	a.logger.Info("Session created", zap.String("session", id))
	return id
}

// History returns a copy of the session transcript, without the system prompt.
func (a *Agent) History(sessionID string) ([]types.Message, error) {
	sess, err := a.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Conversation.Snapshot(), nil
}

// ResetSession clears a session's transcript once any running turn finishes.
func (a *Agent) ResetSession(sessionID string) error {
	if _, err := a.sessions.Get(sessionID); err != nil {
		return err
	}
	sess, release := a.sessions.Acquire(sessionID)
	defer release()
	sess.Conversation.Reset()
	return nil
}

// DeleteSession forgets a session.
func (a *Agent) DeleteSession(sessionID string) error {
	if err := a.sessions.Delete(sessionID); err != nil {
		return err
	}
	a.logger.Info("Session deleted", zap.String("session", sessionID))
	return nil
}

// SessionInfo summarises one session for listings.
type SessionInfo struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Messages  int       `json:"messages"`
}

// Sessions lists known sessions ordered by ID.
func (a *Agent) Sessions() []SessionInfo {
	list := a.sessions.List()
	infos := make([]SessionInfo, 0, len(list))
	for _, s := range list {
		infos = append(infos, SessionInfo{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			Messages:  s.Conversation.Len(),
		})
	}
	return infos
}

// LLMInfo returns information about the configured LLM.
func (a *Agent) LLMInfo() string {
	return fmt.Sprintf("%s @ %s", a.backend.Model(), a.backend.BaseURL())
}
