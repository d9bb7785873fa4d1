package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/kiosk404/echoweather/internal/mcpclient/pkg/errno"
	"github.com/kiosk404/echoweather/internal/pkg/options"
	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/kiosk404/echoweather/pkg/utils/json"
)

const moduleName = "chat"

// ToolSession is the part of an MCP session the orchestrator depends on.
type ToolSession interface {
	Connect(ctx context.Context) error
	ListTools(ctx context.Context) ([]*schema.ToolInfo, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Close() error
}

// Client relays user queries to a chat model and the model's tool calls to
// an MCP server. It performs at most one round of tool calls per query.
type Client struct {
	session      ToolSession
	model        model.BaseChatModel
	maxTokens    int
	queryTimeout time.Duration
}

type Option func(*Client)

// WithMaxTokens bounds every model completion.
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithQueryTimeout bounds a whole ProcessQuery call. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Client) { c.queryTimeout = d }
}

func NewClient(session ToolSession, cm model.BaseChatModel, opts ...Option) *Client {
	c := &Client{
		session:   session,
		model:     cm,
		maxTokens: options.DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect connects the session and returns the tools the server offers.
func (c *Client) Connect(ctx context.Context) ([]*schema.ToolInfo, error) {
	if err := c.session.Connect(ctx); err != nil {
		return nil, err
	}

	tools, err := c.session.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errno.ErrConnectFailed, err)
	}
	logger.InfoX(moduleName, "[Client] connected, %d tools available", len(tools))
	return tools, nil
}

// ProcessQuery answers one query. Without tool calls the model's answer is
// returned as is. Otherwise the result is a marker per executed tool followed
// by the follow-up answer, joined by newlines.
func (c *Client) ProcessQuery(ctx context.Context, query string) (string, error) {
	if c.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	queryID := uuid.NewString()
	logger.DebugX(moduleName, "[Client] query %s: %q", queryID, query)

	messages := []*schema.Message{
		{Role: schema.User, Content: query},
	}

	tools, err := c.session.ListTools(ctx)
	if err != nil {
		return "", fmt.Errorf("list tools: %w", err)
	}

	resp, err := c.model.Generate(ctx, messages,
		model.WithTools(tools),
		model.WithToolChoice(schema.ToolChoiceAllowed),
		model.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if resp == nil {
		return "", errno.ErrEmptyModelResponse
	}
	if len(resp.ToolCalls) == 0 {
		return resp.Content, nil
	}

	output := make([]string, 0, len(resp.ToolCalls)+1)
	for _, call := range resp.ToolCalls {
		args, err := parseArguments(call.Function.Arguments)
		if err != nil {
			return "", fmt.Errorf("%w: tool %s: %v", errno.ErrMalformedToolArguments, call.Function.Name, err)
		}

		logger.InfoX(moduleName, "[Client] query %s: calling tool %s (id=%s)", queryID, call.Function.Name, call.ID)
		result, err := c.session.CallTool(ctx, call.Function.Name, args)
		if err != nil {
			return "", err
		}

		messages = append(messages,
			&schema.Message{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{{
					ID:   call.ID,
					Type: "function",
					Function: schema.FunctionCall{
						Name:      call.Function.Name,
						Arguments: call.Function.Arguments,
					},
				}},
			},
			&schema.Message{
				Role:       schema.Tool,
				Content:    result,
				ToolCallID: call.ID,
			},
		)
		output = append(output, fmt.Sprintf("[Tool %s executed]", call.Function.Name))
	}

	followUp, err := c.model.Generate(ctx, messages, model.WithMaxTokens(c.maxTokens))
	if err != nil {
		return "", fmt.Errorf("generate follow-up: %w", err)
	}
	if followUp == nil {
		return "", errno.ErrEmptyModelResponse
	}
	if len(followUp.ToolCalls) > 0 {
		logger.WarnX(moduleName, "[Client] query %s: ignoring %d tool calls in follow-up response", queryID, len(followUp.ToolCalls))
	}
	output = append(output, followUp.Content)

	return strings.Join(output, "\n"), nil
}

// Close releases the session. Errors are logged, never returned.
func (c *Client) Close() {
	if err := c.session.Close(); err != nil {
		logger.WarnX(moduleName, "[Client] close session: %v", err)
	}
}

func parseArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.UnmarshalString(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}
