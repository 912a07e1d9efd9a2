package email

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// markdownToHTML converts digest markdown into simple HTML for the
// email body. It covers the constructs the digest template emits:
// headers, bold, links, bullet lists, and horizontal rules. It is not
// a general markdown renderer.
func markdownToHTML(markdown string) string {
	var html strings.Builder
	inList := false

	closeList := func() {
		if inList {
			html.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeList()
		case trimmed == "---":
			closeList()
			html.WriteString("<hr>\n")
		case strings.HasPrefix(trimmed, "### "):
			closeList()
			html.WriteString("<h3>" + inline(trimmed[4:]) + "</h3>\n")
		case strings.HasPrefix(trimmed, "## "):
			closeList()
			html.WriteString("<h2>" + inline(trimmed[3:]) + "</h2>\n")
		case strings.HasPrefix(trimmed, "# "):
			closeList()
			html.WriteString("<h1>" + inline(trimmed[2:]) + "</h1>\n")
		case strings.HasPrefix(trimmed, "- "):
			if !inList {
				html.WriteString("<ul>\n")
				inList = true
			}
			html.WriteString("<li>" + inline(trimmed[2:]) + "</li>\n")
		default:
			closeList()
			html.WriteString("<p>" + inline(trimmed) + "</p>\n")
		}
	}
	closeList()

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; color: #1a1a2e;">
%s</div>`, html.String())
}

// inline applies bold and link substitutions to one line.
func inline(text string) string {
	text = linkPattern.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	return text
}
