package weather

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startInProcess(t *testing.T, tools *Tools) *client.Client {
	t.Helper()

	ctx := context.Background()
	cli, err := client.NewInProcessClient(NewServer(tools))
	require.NoError(t, err)
	require.NoError(t, cli.Start(ctx))
	t.Cleanup(func() { _ = cli.Close() })

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "weather-test", Version: "0.0.1"}
	res, err := cli.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, ServerName, res.ServerInfo.Name)
	return cli
}

func callTool(t *testing.T, cli *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := cli.CallTool(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, " ")
}

func TestServerListsTools(t *testing.T) {
	f := newFakeNWS(t)
	cli := startInProcess(t, f.tools())

	res, err := cli.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	byName := map[string]mcp.Tool{}
	for _, tool := range res.Tools {
		byName[tool.Name] = tool
	}
	require.Len(t, byName, 2)

	alerts := byName[ToolGetAlerts]
	assert.Contains(t, alerts.InputSchema.Properties, "state")
	assert.Equal(t, []string{"state"}, alerts.InputSchema.Required)

	forecast := byName[ToolGetForecast]
	assert.Contains(t, forecast.InputSchema.Properties, "latitude")
	assert.Contains(t, forecast.InputSchema.Properties, "longitude")
	assert.ElementsMatch(t, []string{"latitude", "longitude"}, forecast.InputSchema.Required)
}

func TestServerCallsAlerts(t *testing.T) {
	f := newFakeNWS(t)
	f.alertsBody = `{"features":[]}`
	cli := startInProcess(t, f.tools())

	res := callTool(t, cli, ToolGetAlerts, map[string]any{"state": "TX"})
	assert.False(t, res.IsError)
	assert.Equal(t, MsgNoActiveAlerts, resultText(res))
}

func TestServerCallsForecast(t *testing.T) {
	f := newFakeNWS(t)
	f.forecastBody = periodsJSON(1)
	cli := startInProcess(t, f.tools())

	res := callTool(t, cli, ToolGetForecast, map[string]any{"latitude": 38.5, "longitude": -121.5})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(res), "Period 0:")
}

func TestServerRejectsMissingArguments(t *testing.T) {
	f := newFakeNWS(t)
	cli := startInProcess(t, f.tools())

	res := callTool(t, cli, ToolGetAlerts, map[string]any{})
	assert.True(t, res.IsError)

	res = callTool(t, cli, ToolGetForecast, map[string]any{"latitude": 1.0})
	assert.True(t, res.IsError)
	assert.Equal(t, int32(0), f.pointsHits.Load())
}
