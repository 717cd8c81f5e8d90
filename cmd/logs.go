package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/toprak/run/pkg/events"
)

var (
	logger  = log.NewWithOptions(os.Stderr, log.Options{})
	verbose bool
)

// setupLogging switches the package logger to debug output with timestamps
// when verbose is set.
func setupLogging(v bool) {
	verbose = v
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
}

// logHandler forwards pipeline events to the logger.
type logHandler struct {
	mu sync.Mutex
}

func (h *logHandler) Handle(ev events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kv := make([]any, 0, 6)
	if ev.Stage != "" {
		kv = append(kv, "stage", ev.Stage)
	}
	if ev.Path != "" {
		kv = append(kv, "path", ev.Path)
	}
	if ev.Error != nil {
		kv = append(kv, "err", ev.Error)
	}

	switch ev.Level {
	case events.Debug:
		logger.Debug(ev.Message, kv...)
	case events.Info:
		logger.Info(ev.Message, kv...)
	case events.Warning:
		logger.Warn(ev.Message, kv...)
	default:
		logger.Error(ev.Message, kv...)
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes the human summary of a run. Styling is only applied when
// out is a terminal.
type printer struct {
	out  io.Writer
	rich bool

	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	p := &printer{out: out, rich: isTerminal(out)}
	if !p.rich {
		return p
	}

	p.heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7")) // mauve
	p.label = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))              // blue
	p.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))              // muted
	p.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))                 // green
	p.warn = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))               // yellow
	return p
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.rich {
		return s
	}
	return style.Render(s)
}

func (p *printer) Heading(s string) {
	fmt.Fprintln(p.out, p.render(p.heading, s))
}

func (p *printer) Field(label, value string) {
	fmt.Fprintf(p.out, "   %s %s\n", p.render(p.label, label+":"), value)
}

func (p *printer) Line(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *printer) Muted(s string) {
	fmt.Fprintln(p.out, p.render(p.muted, s))
}

func (p *printer) Done(s string) {
	fmt.Fprintln(p.out, p.render(p.ok, "✓ "+s))
}

func (p *printer) Warn(s string) {
	fmt.Fprintln(p.out, p.render(p.warn, "! "+s))
}

func (p *printer) Block(s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Fprintln(p.out, "   "+line)
	}
}
