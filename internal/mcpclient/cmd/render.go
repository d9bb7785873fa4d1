package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cloudwego/eino/schema"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultWidth = 80

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// newMarkdownRenderer renders answers as markdown wrapped to the terminal
// width. Colours are dropped when stdout is not a terminal. Answers that
// fail to render are printed as they are.
func newMarkdownRenderer() Renderer {
	profile := termenv.ANSI256
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		profile = termenv.Ascii
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(termWidth()-4),
	)
	if err != nil {
		return nil
	}

	return func(content string) string {
		rendered, err := r.Render(content)
		if err != nil {
			return content
		}
		return strings.TrimRight(rendered, "\n")
	}
}

// printTools prints the tool names in one line followed by a table of
// names and descriptions.
func printTools(out io.Writer, tools []*schema.ToolInfo) {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	fmt.Fprintf(out, "\nConnected to server with tools: [%s]\n\n", strings.Join(names, ", "))

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("TOOL", "DESCRIPTION")
	for _, t := range tools {
		table.AddRow(t.Name, t.Desc)
	}
	fmt.Fprintln(out, table)
}
