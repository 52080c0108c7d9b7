package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefinitionsURI is the resource listing every loaded definition.
const DefinitionsURI = "automata://definitions"

// Step directions accepted by the step tool.
const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
	DirectionRun      = "run"
)

// DefaultMaxSteps bounds the "run" direction when max_steps is not given.
const DefaultMaxSteps = 10000

// Summary is one entry of list_automata.
type Summary struct {
	Name        string      `json:"name" jsonschema_description:"Definition name used by start_session"`
	Kind        domain.Kind `json:"kind" jsonschema_description:"nfa, dfa or turing"`
	Description string      `json:"description,omitempty"`
}

// ListResponse is the result of list_automata.
type ListResponse struct {
	Automata []Summary `json:"automata"`
}

// StatusResponse is the result of start_session and step.
type StatusResponse struct {
	SessionID     string         `json:"session_id"`
	Automaton     string         `json:"automaton"`
	Kind          domain.Kind    `json:"kind"`
	Input         string         `json:"input"`
	Cyclic        bool           `json:"cyclic,omitempty"`
	Index         int            `json:"index" jsonschema_description:"History index of the current configuration"`
	Outcome       domain.Outcome `json:"outcome" jsonschema_description:"continue, accepted, rejected, halted or boundary"`
	Reason        domain.Reason  `json:"reason,omitempty"`
	Configuration string         `json:"configuration"`
	Message       string         `json:"message"`
	Steps         int            `json:"steps"`
	Finished      bool           `json:"finished" jsonschema_description:"A verdict has been reached"`
	StepLimit     bool           `json:"step_limit,omitempty" jsonschema_description:"The run stopped on its step budget"`
}

// TraceResponse is the result of get_trace.
type TraceResponse struct {
	SessionID string              `json:"session_id"`
	Records   []domain.StepRecord `json:"records"`
}

// EndResponse is the result of end_session.
type EndResponse struct {
	SessionID string `json:"session_id"`
	Deleted   bool   `json:"deleted"`
}

// StartArgs are the start_session arguments.
type StartArgs struct {
	Automaton string `json:"automaton"`
	Input     string `json:"input"`
	Cyclic    bool   `json:"cyclic"`
}

// StepArgs are the step arguments.
type StepArgs struct {
	SessionID string `json:"session_id"`
	Direction string `json:"direction"`
	MaxSteps  int    `json:"max_steps"`
}

// SessionArgs identify a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// Server exposes a session.Service as MCP tools.
type Server struct {
	service   *session.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger. Stdio servers must not log to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc *session.Service, opts ...Option) *Server {
	s := &Server{
		service:   svc,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("automata-mcp", automata.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the automata definitions that can be simulated."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a step-by-step simulation and return its session ID and initial configuration."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Definition name from list_automata")),
		mcp.WithString("input", mcp.Description("Input string; each character is one symbol")),
		mcp.WithBoolean("cyclic", mcp.Description("Repeat the input forever (nfa only)")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("step",
		mcp.WithDescription("Move a session one step forward or back, or run it to its verdict."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_session")),
		mcp.WithString("direction",
			mcp.Description("next (default), previous or run"),
			mcp.Enum(DirectionNext, DirectionPrevious, DirectionRun),
		),
		mcp.WithNumber("max_steps", mcp.Description("Step budget for run; required to stop cyclic sessions")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStep))

	s.mcpServer.AddTool(mcp.NewTool("get_trace",
		mcp.WithDescription("Return every step record of a session."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithOutputSchema[TraceResponse](),
	), mcp.NewStructuredToolHandler(s.handleTrace))

	s.mcpServer.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("Delete a session."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithOutputSchema[EndResponse](),
	), mcp.NewStructuredToolHandler(s.handleEnd))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args struct{}) (ListResponse, error) {
	defs := s.service.Registry().Definitions()
	out := ListResponse{Automata: make([]Summary, len(defs))}
	for i, def := range defs {
		out.Automata[i] = Summary{Name: def.Name, Kind: def.Kind, Description: def.Description}
	}
	return out, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args StartArgs) (StatusResponse, error) {
	clean, err := runner.SanitizeInput(args.Input)
	if err != nil {
		s.logger.Warn("MCP start_session: input rejected", "error", err, "size", len(args.Input))
		return StatusResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	status, err := s.service.Create(ctx, args.Automaton, clean, args.Cyclic)
	if err != nil {
		return StatusResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return respond(status, false), nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest, args StepArgs) (StatusResponse, error) {
	var (
		status *session.Status
		err    error
	)
	switch args.Direction {
	case "", DirectionNext:
		status, err = s.service.Step(ctx, args.SessionID, true)
	case DirectionPrevious:
		status, err = s.service.Step(ctx, args.SessionID, false)
	case DirectionRun:
		budget := args.MaxSteps
		if budget <= 0 {
			budget = DefaultMaxSteps
		}
		status, err = s.service.Run(ctx, args.SessionID, budget)
		if errors.Is(err, domain.ErrStepLimit) && status != nil {
			return respond(status, true), nil
		}
	default:
		return StatusResponse{}, fmt.Errorf("unknown direction %q", args.Direction)
	}
	if err != nil {
		return StatusResponse{}, fmt.Errorf("step failed: %w", err)
	}
	return respond(status, false), nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (TraceResponse, error) {
	records, err := s.service.Trace(ctx, args.SessionID)
	if err != nil {
		return TraceResponse{}, fmt.Errorf("trace failed: %w", err)
	}
	return TraceResponse{SessionID: args.SessionID, Records: records}, nil
}

func (s *Server) handleEnd(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (EndResponse, error) {
	if err := s.service.Delete(ctx, args.SessionID); err != nil {
		return EndResponse{}, fmt.Errorf("end failed: %w", err)
	}
	return EndResponse{SessionID: args.SessionID, Deleted: true}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DefinitionsURI, "Automata definitions",
		mcp.WithResourceDescription("Every loaded definition with its states and transitions"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.service.Registry().Definitions())
		if err != nil {
			return nil, fmt.Errorf("failed to encode definitions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DefinitionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func respond(status *session.Status, limited bool) StatusResponse {
	return StatusResponse{
		SessionID:     status.SessionID,
		Automaton:     status.Automaton,
		Kind:          status.Kind,
		Input:         status.Input,
		Cyclic:        status.Cyclic,
		Index:         status.Result.Index,
		Outcome:       status.Result.Outcome,
		Reason:        status.Result.Reason,
		Configuration: status.Result.Config.String(),
		Message:       status.Result.Message(),
		Steps:         status.Steps,
		Finished:      status.Verdict != nil,
		StepLimit:     limited,
	}
}
