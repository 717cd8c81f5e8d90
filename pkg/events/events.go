package events

import "fmt"

type Level uint8

const (
	Debug Level = iota
	Info
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a single report from a pipeline stage.
type Event struct {
	Level   Level
	Stage   string // which stage reported this
	Path    string // file path relative to the project root, if any
	Message string
	Error   error
}

func (e Event) String() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Error != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Error)
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s", e.Stage, msg)
	}
	return msg
}

type Handler interface {
	Handle(event Event)
}

// Reporter tags events with a stage before handing them on.
type Reporter struct {
	Stage   string
	Handler Handler
}

func (r Reporter) report(level Level, path, msg string, err error) {
	if r.Handler == nil {
		return
	}
	r.Handler.Handle(Event{Level: level, Stage: r.Stage, Path: path, Message: msg, Error: err})
}

func (r Reporter) Debugf(path, format string, args ...any) {
	r.report(Debug, path, fmt.Sprintf(format, args...), nil)
}

func (r Reporter) Infof(path, format string, args ...any) {
	r.report(Info, path, fmt.Sprintf(format, args...), nil)
}

func (r Reporter) Warn(path string, err error, msg string) {
	r.report(Warning, path, msg, err)
}

func (r Reporter) Error(path string, err error, msg string) {
	r.report(Error, path, msg, err)
}
