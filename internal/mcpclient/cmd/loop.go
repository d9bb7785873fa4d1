package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/kiosk404/echoweather/pkg/cli/genericclioptions"
	"github.com/kiosk404/echoweather/pkg/logger"
)

const (
	moduleName = "mcpclient"

	queryPrompt = "\nQuery: "
	quitCommand = "quit"
)

// QueryProcessor answers one user query.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, query string) (string, error)
}

// Renderer turns an answer into terminal output.
type Renderer func(string) string

var errorLine = color.New(color.FgRed, color.Bold)

// ChatLoop reads queries line by line until "quit", end of input or ctx is
// done. A failed query is reported and the loop keeps going.
func ChatLoop(ctx context.Context, p QueryProcessor, streams genericclioptions.IOStreams, render Renderer) error {
	if render == nil {
		render = func(s string) string { return s }
	}

	fmt.Fprintln(streams.Out, "\nMCP Client Started!")
	fmt.Fprintln(streams.Out, "Type your queries or 'quit' to exit.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, streams.In)
	for {
		fmt.Fprint(streams.Out, queryPrompt)

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(streams.Out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(streams.Out)
			return nil
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if strings.EqualFold(query, quitCommand) {
			return nil
		}

		answer, err := p.ProcessQuery(ctx, query)
		if err != nil {
			logger.ErrorX(moduleName, "[ChatLoop] query failed: %v", err)
			errorLine.Fprintf(streams.Out, "\nError: %v\n", err)
			continue
		}
		fmt.Fprintf(streams.Out, "\n%s\n", render(answer))
	}
}

// readLines feeds lines from r until EOF. The channel is closed on EOF or a
// read error.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.WarnX(moduleName, "[ChatLoop] read input: %v", err)
		}
	}()
	return lines
}
