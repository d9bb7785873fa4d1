package errno

import (
	"errors"
)

var (
	ErrMissingServerPath      = errors.New("missing server path")
	ErrConnectFailed          = errors.New("failed to connect to MCP server")
	ErrNotConnected           = errors.New("not connected to an MCP server")
	ErrMalformedToolArguments = errors.New("malformed tool arguments")
	ErrToolCallFailed         = errors.New("tool call failed")
	ErrEmptyModelResponse     = errors.New("empty model response")
)
