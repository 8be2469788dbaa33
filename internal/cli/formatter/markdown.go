package formatter

import (
	"strings"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/charmbracelet/glamour"
)

const (
	treeIndent   = "    "
	markdownWrap = 100
)

// EpicTreeMarkdown renders roots as a nested Markdown bullet list, one
// "* KEY Summary" line per record, indented four spaces per level.
func EpicTreeMarkdown(roots []*app.TreeNode) string {
	var b strings.Builder
	var walk func(nodes []*app.TreeNode, depth int)
	walk = func(nodes []*app.TreeNode, depth int) {
		for _, n := range nodes {
			b.WriteString(strings.Repeat(treeIndent, depth))
			b.WriteString("* ")
			b.WriteString(n.Key)
			if n.Summary != "" {
				b.WriteString(" ")
				b.WriteString(n.Summary)
			}
			b.WriteString("\n")
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return b.String()
}

// RenderMarkdown renders md for a terminal. Callers pass raw Markdown
// through unchanged when output is not a terminal.
func RenderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
