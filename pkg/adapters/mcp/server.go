package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/sanitizer"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const reportURI = "automata://report"

// UploadResponse is the structured result of the upload_machine tool.
type UploadResponse struct {
	Record report.Record `json:"record" jsonschema_description:"Summary of the built machine"`
	Error  string        `json:"error,omitempty" jsonschema_description:"Build failure for INVALID machines"`
}

// Server wraps an automata engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: upload_machine
	uploadTool := mcp.NewTool("upload_machine",
		mcp.WithDescription("Build a finite automaton from its line-based description and register it by name. The first line is the accept set, e.g. {1,2}; every further line is from,symbol,to."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name; re-uploading replaces the machine")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Machine description text")),
		mcp.WithOutputSchema[UploadResponse](),
	)
	s.mcpServer.AddTool(uploadTool, mcp.NewStructuredToolHandler(s.handleUpload))

	// TOOL: evaluate_strings
	evaluateTool := mcp.NewTool("evaluate_strings",
		mcp.WithDescription("Run candidate strings (one per line) against a machine. Omit name to run every valid machine."),
		mcp.WithString("name", mcp.Description("Machine name (optional)")),
		mcp.WithString("strings", mcp.Required(), mcp.Description("Newline separated candidate strings")),
	)
	s.mcpServer.AddTool(evaluateTool, s.handleEvaluate)

	// TOOL: get_report
	s.mcpServer.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Get the summary of every machine: name, kind, state count, accepted count."),
		mcp.WithString("format", mcp.Description("text (default), markdown or yaml")),
	), s.handleReport)

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a Mermaid flowchart of a machine."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, _ := request.GetArguments()["name"].(string)
		m, err := s.engine.Machine(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(m)), nil
	})
}

func (s *Server) handleUpload(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (UploadResponse, error) {
	name, _ := args["name"].(string)
	description, _ := args["description"].(string)
	if err := sanitizer.ValidateName(name); err != nil {
		return UploadResponse{}, err
	}
	if err := sanitizer.CheckSize(description); err != nil {
		return UploadResponse{}, err
	}

	var resp UploadResponse
	if _, err := s.engine.Upload(ctx, name, description); err != nil {
		slog.Warn("MCP Upload: machine invalid", "machine", name, "err", err)
		resp.Error = err.Error()
	}
	rec, err := s.engine.Record(name)
	if err != nil {
		return UploadResponse{}, err
	}
	resp.Record = rec
	return resp, nil
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name, _ := args["name"].(string)
	batch, _ := args["strings"].(string)
	if err := sanitizer.CheckSize(batch); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var (
		out any
		err error
	)
	if name == "" {
		out, err = s.engine.EvaluateAll(ctx, batch)
	} else {
		out, err = s.engine.Evaluate(ctx, name, batch)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluate failed: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, _ := request.GetArguments()["format"].(string)
	records := s.engine.Report()

	switch format {
	case "", "text":
		return mcp.NewToolResultText(report.Format(records)), nil
	case "markdown":
		return mcp.NewToolResultText(report.Markdown(records)), nil
	case "yaml":
		out, err := report.YAML(records)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://report
	s.mcpServer.AddResource(mcp.NewResource(reportURI, "Machine Report",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      reportURI,
				MIMEType: "text/plain",
				Text:     report.Format(s.engine.Report()),
			},
		}, nil
	})
}
