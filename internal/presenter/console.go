package presenter

import (
	"fmt"
	"io"
	"strings"

	"NewsAnalyzer/internal/domain"
)

// Console prints run progress as plain status lines.
type Console struct {
	w           io.Writer
	maxArticles int
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer, maxArticles int) *Console {
	return &Console{w: w, maxArticles: maxArticles}
}

// Handle renders one event; its method value satisfies usecase.Progress.
func (c *Console) Handle(e domain.Event) {
	for _, m := range Messages(e, c.maxArticles) {
		c.print(m)
	}
}

func (c *Console) print(m Message) {
	switch m.Level {
	case LevelInfo:
		fmt.Fprintf(c.w, "[*] %s\n", m.Text)
	case LevelSuccess:
		fmt.Fprintf(c.w, "[+] %s\n", m.Text)
	case LevelWarning:
		fmt.Fprintf(c.w, "[!] %s\n", m.Text)
	case LevelError:
		fmt.Fprintf(c.w, "[x] %s\n", m.Text)
	case LevelHeading:
		fmt.Fprintf(c.w, "\n%s\n", m.Text)
	case LevelBlock:
		fmt.Fprintf(c.w, "\n%s:\n%s\n\n", m.Title, indent(m.Text, "  "))
	default:
		fmt.Fprintf(c.w, "    %s\n", m.Text)
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
