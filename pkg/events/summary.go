package events

import (
	"fmt"
	"strings"
)

type Summary struct {
	WarningCount int
	ErrorCount   int

	Warnings []Event
	Errors   []Event

	Full []Event
}

func (s Summary) String() string {
	var b strings.Builder

	section := func(title string, count int, list []Event) {
		if count == 0 {
			return
		}
		fmt.Fprintf(&b, "%s (%d):\n", title, count)
		for _, e := range list {
			if e.Error != nil {
				fmt.Fprintf(&b, "- %s (%s)\n", e.Message, e.Error.Error())
			} else {
				fmt.Fprintf(&b, "- %s\n", e.Message)
			}
		}
	}

	section("Errors", s.ErrorCount, s.Errors)
	section("Warnings", s.WarningCount, s.Warnings)

	return strings.TrimRight(b.String(), "\n")
}
