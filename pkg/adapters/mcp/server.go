package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/outlet"
	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultSession is used when a tool call names no session.
const DefaultSession = "default"

// OutletsResponse wraps a list so tools always return a JSON object.
type OutletsResponse struct {
	Outlets []session.OutletInfo `json:"outlets" jsonschema_description:"Outlets in creation order"`
}

// SessionArgs selects a session.
type SessionArgs struct {
	Session string `json:"session,omitempty"`
}

// AddItemArgs are the arguments of add_item.
type AddItemArgs struct {
	Session string `json:"session,omitempty"`
	Title   string `json:"title"`
	Split   string `json:"split,omitempty"`
}

// CreateOutletArgs are the arguments of create_outlet.
type CreateOutletArgs struct {
	Session string         `json:"session,omitempty"`
	Title   string         `json:"title"`
	Options map[string]any `json:"options,omitempty"`
}

// OutletActionArgs are the arguments of outlet_action.
type OutletActionArgs struct {
	Session  string `json:"session,omitempty"`
	OutletID string `json:"outlet_id"`
	Action   string `json:"action"`
	Location string `json:"location,omitempty"`
	Backward bool   `json:"backward,omitempty"`
	Target   string `json:"target,omitempty"`
	Split    string `json:"split,omitempty"`
	Activate bool   `json:"activate,omitempty"`
}

// Server exposes the sessions of a Manager as an MCP Server.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(m *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions: m,
		logger:   logging.NewNop(),
		mcpServer: server.NewMCPServer("outlet-mcp", strings.TrimSpace(outlet.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
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
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
	sessionParam := mcp.WithString("session", mcp.Description("Session ID (default: \"default\")"))

	// TOOL: get_layout
	s.mcpServer.AddTool(mcp.NewTool("get_layout",
		mcp.WithDescription("Get the panes, docks and items of a session's workspace."),
		sessionParam,
		mcp.WithOutputSchema[domain.Layout](),
	), mcp.NewStructuredToolHandler(s.handleGetLayout))

	// TOOL: list_outlets
	s.mcpServer.AddTool(mcp.NewTool("list_outlets",
		mcp.WithDescription("List the outlets of a session with their location and visibility."),
		sessionParam,
		mcp.WithOutputSchema[OutletsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListOutlets))

	// TOOL: add_item
	s.mcpServer.AddTool(mcp.NewTool("add_item",
		mcp.WithDescription("Open a plain document in the active center pane, optionally splitting it first."),
		sessionParam,
		mcp.WithString("title", mcp.Required(), mcp.Description("Document title")),
		mcp.WithString("split", mcp.Description("Split the active pane first"), mcp.Enum("left", "right", "up", "down")),
		mcp.WithOutputSchema[session.ItemInfo](),
	), mcp.NewStructuredToolHandler(s.handleAddItem))

	// TOOL: create_outlet
	s.mcpServer.AddTool(mcp.NewTool("create_outlet",
		mcp.WithDescription("Create an outlet around a new item. The outlet is not opened."),
		sessionParam,
		mcp.WithString("title", mcp.Description("Item title")),
		mcp.WithObject("options", mcp.Description(
			"Outlet options: allowedLocations, defaultLocation, split, useAdjacentPane, trackModified, classList")),
		mcp.WithOutputSchema[session.OutletInfo](),
	), mcp.NewStructuredToolHandler(s.handleCreateOutlet))

	// TOOL: outlet_action
	actions := make([]string, len(domain.Actions))
	for i, a := range domain.Actions {
		actions[i] = string(a)
	}
	s.mcpServer.AddTool(mcp.NewTool("outlet_action",
		mcp.WithDescription("Run an operation on an outlet and return its resulting state."),
		sessionParam,
		mcp.WithString("outlet_id", mcp.Required(), mcp.Description("Outlet ID returned by create_outlet")),
		mcp.WithString("action", mcp.Required(), mcp.Description("Operation"), mcp.Enum(actions...)),
		mcp.WithString("location", mcp.Description("Target location for open"), mcp.Enum("center", "bottom", "left", "right")),
		mcp.WithBoolean("backward", mcp.Description("Relocate backwards through the allowed locations")),
		mcp.WithString("target", mcp.Description("Item ID to link to")),
		mcp.WithString("split", mcp.Description("Split direction for open"), mcp.Enum("left", "right", "up", "down")),
		mcp.WithBoolean("activate", mcp.Description("Keep the new center pane active after open")),
		mcp.WithOutputSchema[session.OutletInfo](),
	), mcp.NewStructuredToolHandler(s.handleOutletAction))

	// TOOL: delete_outlet
	s.mcpServer.AddTool(mcp.NewTool("delete_outlet",
		mcp.WithDescription("Destroy an outlet and forget it."),
		sessionParam,
		mcp.WithString("outlet_id", mcp.Required(), mcp.Description("Outlet ID")),
		mcp.WithOutputSchema[OutletsResponse](),
	), mcp.NewStructuredToolHandler(s.handleDeleteOutlet))
}

func sessionName(id string) string {
	if id == "" {
		return DefaultSession
	}
	return id
}

func (s *Server) handleGetLayout(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (domain.Layout, error) {
	return s.sessions.LoadOrStart(sessionName(args.Session)).Layout(ctx)
}

func (s *Server) handleListOutlets(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (OutletsResponse, error) {
	infos, err := s.sessions.LoadOrStart(sessionName(args.Session)).List(ctx)
	return OutletsResponse{Outlets: infos}, err
}

func (s *Server) handleAddItem(ctx context.Context, request mcp.CallToolRequest, args AddItemArgs) (session.ItemInfo, error) {
	return s.sessions.LoadOrStart(sessionName(args.Session)).AddItem(ctx, args.Title, domain.SplitDirection(args.Split))
}

func (s *Server) handleCreateOutlet(ctx context.Context, request mcp.CallToolRequest, args CreateOutletArgs) (session.OutletInfo, error) {
	var info session.OutletInfo
	err := s.sessions.WithLock(ctx, sessionName(args.Session), func(ctx context.Context, sess *session.Session) error {
		var err error
		info, err = sess.CreateOutlet(ctx, args.Title, args.Options)
		return err
	})
	if err != nil {
		return session.OutletInfo{}, fmt.Errorf("create_outlet failed: %w", err)
	}
	return info, nil
}

func (s *Server) handleOutletAction(ctx context.Context, request mcp.CallToolRequest, args OutletActionArgs) (session.OutletInfo, error) {
	action, err := domain.ParseAction(args.Action)
	if err != nil {
		return session.OutletInfo{}, err
	}
	actionArgs := domain.ActionArgs{
		Location: domain.Location(args.Location),
		Backward: args.Backward,
		Target:   args.Target,
		Split:    domain.SplitDirection(args.Split),
		Activate: args.Activate,
	}
	var info session.OutletInfo
	err = s.sessions.WithLock(ctx, sessionName(args.Session), func(ctx context.Context, sess *session.Session) error {
		var err error
		info, err = sess.Do(ctx, args.OutletID, action, actionArgs)
		return err
	})
	if err != nil {
		s.logger.Debug("MCP outlet_action rejected", "action", action, "outlet", args.OutletID, "err", err)
		return session.OutletInfo{}, err
	}
	return info, nil
}

func (s *Server) handleDeleteOutlet(ctx context.Context, request mcp.CallToolRequest, args OutletActionArgs) (OutletsResponse, error) {
	sess := s.sessions.LoadOrStart(sessionName(args.Session))
	if err := sess.Delete(ctx, args.OutletID); err != nil {
		return OutletsResponse{}, err
	}
	infos, err := sess.List(ctx)
	return OutletsResponse{Outlets: infos}, err
}

func (s *Server) registerResources() {
	// EXPOSE: outlet://sessions/{session}/layout
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(
		"outlet://sessions/{session}/layout",
		"Session Layout",
		mcp.WithTemplateDescription("Current workspace layout of a session."),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readLayout)
}

func (s *Server) readLayout(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := sessionFromURI(request.Params.URI)
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	layout, err := sess.Layout(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// sessionFromURI extracts {session} from outlet://sessions/{session}/layout.
func sessionFromURI(uri string) string {
	rest := strings.TrimPrefix(uri, "outlet://sessions/")
	id, _, _ := strings.Cut(rest, "/")
	return id
}
