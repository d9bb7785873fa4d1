package mcp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServerConfig defines how to reach a single MCP server.
// Supports two transport types: "stdio" (subprocess) and "sse" (HTTP SSE).
type ServerConfig struct {
	// Transport is the MCP transport protocol: "stdio" or "sse".
	// Default: "stdio".
	Transport string `json:"transport,omitempty"`

	// --- stdio transport fields ---

	// Command is the executable to launch (stdio only).
	Command string `json:"command,omitempty"`

	// Args are the command-line arguments (stdio only).
	Args []string `json:"args,omitempty"`

	// Env is appended to the client's environment for the subprocess (stdio only).
	// Format: ["KEY=VALUE", ...].
	Env []string `json:"env,omitempty"`

	// --- sse transport fields ---

	// URL is the SSE endpoint URL (sse only).
	URL string `json:"url,omitempty"`
}

// interpreters maps script extensions to the program that runs them.
var interpreters = map[string]string{
	".py": "python",
	".js": "node",
}

// ServerConfigFromTarget builds a ServerConfig from the client's positional
// argument. Python and Node scripts are run through their interpreter, an
// http(s) URL selects the SSE transport, and anything else is executed as is.
func ServerConfigFromTarget(target string, extraArgs []string) (*ServerConfig, error) {
	if strings.TrimSpace(target) == "" {
		return nil, errors.New("server path is empty")
	}

	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return &ServerConfig{Transport: TransportSSE, URL: target}, nil
	}

	if interp, ok := interpreters[strings.ToLower(filepath.Ext(target))]; ok {
		args := append([]string{target}, extraArgs...)
		return &ServerConfig{Transport: TransportStdio, Command: interp, Args: args}, nil
	}

	return &ServerConfig{Transport: TransportStdio, Command: target, Args: extraArgs}, nil
}

// Validate checks the configuration for obvious errors and fills the default transport.
func (c *ServerConfig) Validate() error {
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	switch c.Transport {
	case TransportStdio:
		if c.Command == "" {
			return errors.New("command is required for stdio transport")
		}
	case TransportSSE:
		if c.URL == "" {
			return errors.New("url is required for sse transport")
		}
	default:
		return fmt.Errorf("unsupported transport %q (must be 'stdio' or 'sse')", c.Transport)
	}
	return nil
}

func (c *ServerConfig) String() string {
	if c.Transport == TransportSSE {
		return c.URL
	}
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}
