package httphandler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ericfisherdev/budgetbot/internal/application"
)

var (
	mdRenderer    = goldmark.New(goldmark.WithExtensions(extension.GFM))
	htmlSanitizer = bluemonday.UGCPolicy()
)

// helpMarkdown builds the command reference as a GFM table.
func helpMarkdown(commands []application.CommandInfo) string {
	var b strings.Builder
	b.WriteString("# Expense Tracker Bot\n\n")
	b.WriteString("All amounts are whole JPY. Every user shares one ledger.\n\n")
	b.WriteString("| Command | Description |\n|---|---|\n")
	for _, c := range commands {
		usage := strings.NewReplacer("|", `\|`).Replace(c.Usage)
		fmt.Fprintf(&b, "| `%s` | %s |\n", usage, c.Description)
	}
	b.WriteString("\nAny other message gets a short usage hint.\n")
	return b.String()
}

// renderHelpPage converts the command reference to sanitized HTML.
func renderHelpPage(commands []application.CommandInfo) string {
	src := helpMarkdown(commands)

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(src)
	}

	return htmlSanitizer.Sanitize(buf.String())
}
