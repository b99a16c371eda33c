// Package logging builds the prefixed gommon loggers shared by echo and the core.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

// New returns a logger writing JSON headed lines to stdout.
func New(prefix string, level string) *log.Logger {
	l := log.New(prefix)
	l.SetHeader(header)
	l.SetOutput(os.Stdout)
	l.SetLevel(ParseLevel(level))
	return l
}

// To is New with an explicit writer.
func To(w io.Writer, prefix string, level string) *log.Logger {
	l := New(prefix, level)
	l.SetOutput(w)
	return l
}

// Discard drops everything, for tests that do not inspect logs.
func Discard(prefix string) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}

func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
