package cli

import (
	charmlog "github.com/charmbracelet/log"
)

// LogNotifier reports screen notifications through the logger. Successes
// log at info. Failures log at debug, because the failing command also
// returns the error and main prints it.
type LogNotifier struct {
	Logger *charmlog.Logger
}

func (n LogNotifier) Success(msg string) {
	n.Logger.Info(msg)
}

func (n LogNotifier) Failure(action string, err error) {
	n.Logger.Debug(action+" failed", "err", err)
}
