package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/echoweather/internal/mcpclient/options"
	"github.com/kiosk404/echoweather/internal/mcpclient/pkg/errno"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/chat"
	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm"
	mcpsvc "github.com/kiosk404/echoweather/internal/mcpclient/service/mcp"
	"github.com/kiosk404/echoweather/internal/pkg/config"
	genericoptions "github.com/kiosk404/echoweather/internal/pkg/options"
	"github.com/kiosk404/echoweather/pkg/cli/genericclioptions"
	"github.com/kiosk404/echoweather/pkg/logger"
	"github.com/spf13/cobra"
)

// ModelFactory builds the chat model from the model options.
type ModelFactory func(ctx context.Context, opts *genericoptions.ModelOptions) (model.BaseChatModel, error)

// SessionFactory builds a disconnected session for the resolved server.
type SessionFactory func(name string, cfg *mcpsvc.ServerConfig, opts *options.Options) chat.ToolSession

type factories struct {
	providers  []string
	newModel   ModelFactory
	newSession SessionFactory
}

func defaultFactories() factories {
	models := llm.New()
	return factories{
		providers: models.Providers(),
		newModel:  models.NewChatModel,
		newSession: func(name string, cfg *mcpsvc.ServerConfig, opts *options.Options) chat.ToolSession {
			return mcpsvc.NewSession(name, cfg, mcpsvc.WithInitTimeout(opts.MCP.InitTimeout))
		},
	}
}

// NewDefaultMCPClientCommand creates the `mcpclient` command with default arguments.
func NewDefaultMCPClientCommand() *cobra.Command {
	return NewMCPClientCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewMCPClientCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newCommand(genericclioptions.IOStreams{In: in, Out: out, ErrOut: errOut}, defaultFactories())
}

func newCommand(streams genericclioptions.IOStreams, f factories) *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "mcpclient <path_to_server_script> [server args...]",
		Short: "Chat with a language model that can call the tools of an MCP server",
		Long: heredoc.Doc(`
			mcpclient launches an MCP tool server as a child process, connects to it
			over stdio and starts an interactive chat. Every query is sent to the
			configured chat model together with the server's tools. Tool calls the
			model requests are executed on the server and their results are handed
			back to the model for a final answer.

			Scripts ending in .py run with python and scripts ending in .js run with
			node. Anything else is executed directly. An http(s) URL connects to a
			running server over SSE instead.

			Flags may also be set through MCPCLIENT_* environment variables, e.g.
			MCPCLIENT_MODEL_PROVIDER for --model.provider, or a --config file.
		`),
		Example: heredoc.Doc(`
			# Chat with the weather server through Azure OpenAI
			mcpclient ./weather

			# Use OpenAI and render answers as markdown
			mcpclient --model.provider=openai --model.name=gpt-4o-mini --markdown ./weather

			# Run a Python server
			mcpclient weather.py
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("%w: usage: %s", errno.ErrMissingServerPath, cmd.UseLine())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, args, opts, streams, f)
		},
	}

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	// Everything after the script path belongs to the server.
	cmd.Flags().SetInterspersed(false)
	opts.AddFlags(cmd.Flags())
	if len(f.providers) > 0 {
		cmd.Flags().Lookup("model.provider").Usage = fmt.Sprintf("Chat model provider: %s.", strings.Join(f.providers, ", "))
	}

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options.Options, streams genericclioptions.IOStreams, f factories) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	if err := config.Load(cmd.Flags(), options.EnvPrefix, opts.ConfigFile, opts); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := opts.Log.Apply(); err != nil {
		return err
	}
	defer logger.Flush()

	logger.Debug("[MCPClient] options: %s", opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverCfg, err := mcpsvc.ServerConfigFromTarget(args[0], args[1:])
	if err != nil {
		return err
	}

	logger.Info("[MCPClient] connecting to %s, model provider %s", serverCfg, opts.Model.Provider)
	cm, err := f.newModel(ctx, opts.Model)
	if err != nil {
		return fmt.Errorf("create chat model: %w", err)
	}

	client := chat.NewClient(
		f.newSession(filepath.Base(args[0]), serverCfg, opts),
		cm,
		chat.WithMaxTokens(opts.Model.MaxTokens),
		chat.WithQueryTimeout(opts.QueryTimeout),
	)
	defer client.Close()

	tools, err := client.Connect(ctx)
	if err != nil {
		return err
	}
	printTools(streams.Out, tools)

	var render Renderer
	if opts.Markdown {
		render = newMarkdownRenderer()
	}
	return ChatLoop(ctx, client, streams, render)
}
