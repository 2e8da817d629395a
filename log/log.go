// Package log provides the leveled loggers used by every package. All
// loggers share one logrus.Logger so SetDebug applies to loggers created
// before and after it is called.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

var std = func() *logrus.Logger {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{ForceColors: true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true}
	return l
}()

// SetDebug switches every Log between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		std.SetLevel(logrus.DebugLevel)
		return
	}
	std.SetLevel(logrus.InfoLevel)
}

// SetOutput redirects every Log to w.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Log is a logger tagged with the name of the package using it.
type Log struct {
	*logrus.Entry
}

func New(pkg string) Log {
	return Log{Entry: std.WithField("pkg", pkg)}
}
