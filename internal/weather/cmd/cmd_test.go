package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherCommandServes(t *testing.T) {
	var served []string
	serve := func(ctx context.Context, s *server.MCPServer) error {
		cli, err := client.NewInProcessClient(s)
		require.NoError(t, err)
		defer cli.Close()
		require.NoError(t, cli.Start(ctx))

		initReq := mcp.InitializeRequest{}
		initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
		_, err = cli.Initialize(ctx, initReq)
		require.NoError(t, err)

		res, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)
		for _, tool := range res.Tools {
			served = append(served, tool.Name)
		}
		return context.Canceled
	}

	var errOut bytes.Buffer
	cmd := NewWeatherCommand(&errOut, serve)
	cmd.SetArgs([]string{"--nws.base-url=http://127.0.0.1:1", "--log.level=warn"})

	require.NoError(t, cmd.Execute())
	assert.ElementsMatch(t, []string{"get_alerts", "get_forecast"}, served)
}

func TestWeatherCommandRejectsArgs(t *testing.T) {
	called := false
	var errOut bytes.Buffer
	cmd := NewWeatherCommand(&errOut, func(context.Context, *server.MCPServer) error {
		called = true
		return nil
	})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
	assert.False(t, called)
}

func TestWeatherCommandInvalidOptions(t *testing.T) {
	var errOut bytes.Buffer
	cmd := NewWeatherCommand(&errOut, func(context.Context, *server.MCPServer) error {
		return errors.New("should not serve")
	})
	cmd.SetArgs([]string{"--nws.timeout=0s"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nws.timeout")
}

func TestWeatherCommandServeError(t *testing.T) {
	var errOut bytes.Buffer
	cmd := NewWeatherCommand(&errOut, func(context.Context, *server.MCPServer) error {
		return errors.New("stdin closed")
	})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "stdin closed")
}
