// Package console renders the human-facing run narration: step banners,
// a live progress bar, and the completion notice. It never makes
// decisions; the operational run log is a separate concern.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 2)
	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2ECC71"))
)

// Console writes styled output to stdout, degrading to plain lines when
// styling is disabled or stdout is not a terminal.
type Console struct {
	out   io.Writer
	plain bool
}

// New builds a Console. plain forces unstyled output even on a TTY.
func New(plain bool) *Console {
	return &Console{
		out:   os.Stdout,
		plain: plain || !isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// Banner prints the boxed report headline.
func (c *Console) Banner(title string) {
	if c.plain {
		fmt.Fprintf(c.out, "== %s ==\n", title)
		return
	}
	fmt.Fprintln(c.out, bannerStyle.Render(title))
}

// Step announces one phase of the run.
func (c *Console) Step(n int, title string) {
	label := fmt.Sprintf("Step %d · %s", n, title)
	if c.plain {
		fmt.Fprintln(c.out, label)
		return
	}
	fmt.Fprintln(c.out, stepStyle.Render(label))
}

// Successf prints a highlighted status line.
func (c *Console) Successf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if c.plain {
		fmt.Fprintln(c.out, line)
		return
	}
	fmt.Fprintln(c.out, successStyle.Render(line))
}

// Printf prints an unstyled line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
