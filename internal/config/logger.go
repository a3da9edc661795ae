package config

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// NewLogger builds the process logger from the logging settings. Output
// goes to w, or stderr when w is nil, so stdout stays free for the tool
// transport.
func (c LoggingConfig) NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	var writer log.Writer = &log.IOWriter{Writer: w}
	if c.Format != "json" {
		writer = &log.ConsoleWriter{Writer: w}
	}
	return &log.Logger{
		Level:      log.ParseLevel(c.Level),
		TimeFormat: "15:04:05",
		Writer:     writer,
	}
}
