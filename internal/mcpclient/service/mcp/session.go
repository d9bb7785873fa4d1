package mcp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	mcpTool "github.com/cloudwego/eino-ext/components/tool/mcp"
	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/echoweather/internal/mcpclient/pkg/errno"
	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const moduleName = "mcp"

// SessionStatus represents the connection state of an MCP session.
type SessionStatus int

const (
	SessionStatusDisconnected SessionStatus = iota
	SessionStatusConnecting
	SessionStatusConnected
	SessionStatusError
)

func (s SessionStatus) String() string {
	switch s {
	case SessionStatusDisconnected:
		return "Disconnected"
	case SessionStatusConnecting:
		return "Connecting"
	case SessionStatusConnected:
		return "Connected"
	case SessionStatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

const DefaultInitTimeout = 30 * time.Second

// Session owns one MCP client connection and, for stdio, the server subprocess.
type Session struct {
	name        string
	config      *ServerConfig
	clientInfo  mcp.Implementation
	initTimeout time.Duration

	mu     sync.RWMutex
	client client.MCPClient
	status SessionStatus
}

type Option func(*Session)

// WithInitTimeout bounds the initialize handshake. Zero disables the bound.
func WithInitTimeout(d time.Duration) Option {
	return func(s *Session) { s.initTimeout = d }
}

// WithClientInfo sets the implementation info sent during the handshake.
func WithClientInfo(name, version string) Option {
	return func(s *Session) {
		s.clientInfo = mcp.Implementation{Name: name, Version: version}
	}
}

// NewSession creates a disconnected session. cfg may be nil when the caller
// only intends to Attach an already started client.
func NewSession(name string, cfg *ServerConfig, opts ...Option) *Session {
	s := &Session{
		name:        name,
		config:      cfg,
		clientInfo:  mcp.Implementation{Name: "echoweather-mcpclient", Version: "0.1.0"},
		initTimeout: DefaultInitTimeout,
		status:      SessionStatusDisconnected,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the session name.
func (s *Session) Name() string {
	return s.name
}

// Status returns the current connection status.
func (s *Session) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Connect launches (or dials) the server and performs the initialize handshake.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == SessionStatusConnected {
		return nil
	}
	if s.config == nil {
		return s.failLocked(fmt.Errorf("%w: session %q has no server config", errno.ErrConnectFailed, s.name))
	}
	if err := s.config.Validate(); err != nil {
		return s.failLocked(fmt.Errorf("%w: %q: %v", errno.ErrConnectFailed, s.name, err))
	}

	s.status = SessionStatusConnecting

	cli, err := s.createClient(ctx)
	if err != nil {
		return s.failLocked(fmt.Errorf("%w: %q: create client: %v", errno.ErrConnectFailed, s.name, err))
	}

	return s.attachLocked(ctx, cli)
}

// Attach performs the initialize handshake over an already started client,
// e.g. an in-process client.
func (s *Session) Attach(ctx context.Context, cli client.MCPClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = SessionStatusConnecting
	return s.attachLocked(ctx, cli)
}

// attachLocked must be called with s.mu held. On failure the client is closed
// so a spawned subprocess does not outlive the failed handshake.
func (s *Session) attachLocked(ctx context.Context, cli client.MCPClient) error {
	initCtx := ctx
	if s.initTimeout > 0 {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, s.initTimeout)
		defer cancel()
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = s.clientInfo

	res, err := cli.Initialize(initCtx, initReq)
	if err != nil {
		if cerr := cli.Close(); cerr != nil {
			logger.WarnX(moduleName, "[MCP] session %q: close after failed handshake: %v", s.name, cerr)
		}
		return s.failLocked(fmt.Errorf("%w: %q: initialize: %v", errno.ErrConnectFailed, s.name, err))
	}

	s.client = cli
	s.status = SessionStatusConnected
	logger.InfoX(moduleName, "[MCP] session %q connected to %s %s (protocol %s)",
		s.name, res.ServerInfo.Name, res.ServerInfo.Version, res.ProtocolVersion)
	return nil
}

func (s *Session) failLocked(err error) error {
	s.status = SessionStatusError
	return err
}

func (s *Session) connectedClient() (client.MCPClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status != SessionStatusConnected || s.client == nil {
		return nil, fmt.Errorf("%w: session %q is %s", errno.ErrNotConnected, s.name, s.status)
	}
	return s.client, nil
}

// ListTools asks the server for its current tools and translates each
// descriptor into the model's tool calling convention.
func (s *Session) ListTools(ctx context.Context) ([]*schema.ToolInfo, error) {
	cli, err := s.connectedClient()
	if err != nil {
		return nil, err
	}

	tools, err := mcpTool.GetTools(ctx, &mcpTool.Config{Cli: cli})
	if err != nil {
		return nil, fmt.Errorf("[MCP] session %q: list tools: %w", s.name, err)
	}

	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("[MCP] session %q: tool info: %w", s.name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// CallTool executes one tool and returns its text content. A result the
// server flags as an error is still returned as text.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	cli, err := s.connectedClient()
	if err != nil {
		return "", err
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := cli.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", errno.ErrToolCallFailed, name, err)
	}

	text := TextContent(res)
	if res.IsError {
		logger.WarnX(moduleName, "[MCP] tool %s reported an error: %s", name, text)
	}
	return text, nil
}

// TextContent joins the text items of a tool result with a single space.
// Non-text items are skipped.
func TextContent(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}

	parts := make([]string, 0, len(res.Content))
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Close closes the connection and releases resources. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		if err := s.client.Close(); err != nil {
			logger.WarnX(moduleName, "[MCP] session %q: failed to close client: %v", s.name, err)
		}
		s.client = nil
		logger.InfoX(moduleName, "[MCP] session %q closed", s.name)
	}

	s.status = SessionStatusDisconnected
	return nil
}

// createClient creates a transport-specific MCP client.
// Must be called with s.mu held.
func (s *Session) createClient(ctx context.Context) (client.MCPClient, error) {
	switch s.config.Transport {
	case TransportStdio:
		logger.DebugX(moduleName, "[MCP] session %q: spawning %s", s.name, s.config)
		cli, err := client.NewStdioMCPClient(s.config.Command, s.config.Env, s.config.Args...)
		if err != nil {
			return nil, err
		}
		if stderr, ok := client.GetStderr(cli); ok {
			go s.drainStderr(stderr)
		}
		return cli, nil
	case TransportSSE:
		cli, err := client.NewSSEMCPClient(s.config.URL)
		if err != nil {
			return nil, err
		}
		if err := cli.Start(ctx); err != nil {
			_ = cli.Close()
			return nil, err
		}
		return cli, nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", s.config.Transport)
	}
}

// drainStderr forwards the server's stderr to the log until the pipe closes.
func (s *Session) drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logger.DebugX(moduleName, "[MCP] %s stderr: %s", s.name, scanner.Text())
	}
}
