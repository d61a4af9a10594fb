// Progress rendering for the per-organization fetch loop.
//
// The styled tracker runs a bubbletea program in its own goroutine and
// feeds it advanceMsg values as organizations complete; End sends endMsg
// and blocks until the program exits, so the caller never races the
// final frame. The plain tracker prints one line per organization.
package console

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Tracker reports fetch progress across a fixed number of organizations.
type Tracker interface {
	Begin(total int)
	Advance(orgName string)
	End()
}

// Progress returns a tracker matched to the console mode. interrupt
// runs when the user cancels from the styled view; plain mode leaves
// ctrl+c to ordinary signal delivery instead.
func (c *Console) Progress(interrupt func()) Tracker {
	if c.plain {
		return &lineTracker{out: c}
	}
	return &barTracker{interrupt: interrupt}
}

type lineTracker struct {
	out   *Console
	total int
	done  int
}

func (t *lineTracker) Begin(total int) { t.total = total }

func (t *lineTracker) Advance(orgName string) {
	t.done++
	t.out.Printf("Processing org: %s (%d of %d)", orgName, t.done, t.total)
}

func (t *lineTracker) End() {}

type advanceMsg string

type endMsg struct{}

type barTracker struct {
	interrupt func()
	prog      *tea.Program
	done      chan struct{}
}

func (t *barTracker) Begin(total int) {
	t.prog = tea.NewProgram(newProgressModel(total, t.interrupt))
	t.done = make(chan struct{})
	go func() {
		defer close(t.done)
		_, _ = t.prog.Run()
	}()
}

func (t *barTracker) Advance(orgName string) {
	if t.prog == nil {
		return
	}
	t.prog.Send(advanceMsg(orgName))
}

func (t *barTracker) End() {
	if t.prog == nil {
		return
	}
	t.prog.Send(endMsg{})
	<-t.done
}

type progressModel struct {
	bar       progress.Model
	total     int
	done      int
	current   string
	interrupt func()
}

func newProgressModel(total int, interrupt func()) progressModel {
	bar := progress.New(progress.WithSolidFill("#5B8DEF"))
	return progressModel{bar: bar, total: total, interrupt: interrupt}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.interrupt != nil {
				m.interrupt()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width < 10 {
			width = 10
		}
		m.bar.Width = width
	case advanceMsg:
		m.done++
		m.current = string(msg)
	case endMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	pct := 1.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	line := fmt.Sprintf("%d/%d organizations", m.done, m.total)
	if m.current != "" {
		line += " · " + m.current
	}
	return fmt.Sprintf("\n  %s\n  %s\n", m.bar.ViewAs(pct), line)
}
