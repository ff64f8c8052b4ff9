package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

func init() {
	Info = log.New(os.Stdout, "INFO: ", logFlags)
	Error = log.New(os.Stdout, "ERROR: ", logFlags)
	Debug = log.New(io.Discard, "DEBUG: ", logFlags)
	Warn = log.New(os.Stdout, "WARN: ", logFlags)
}

// SetOutput redirects every level. The CLI sends logs to stderr so stdout
// stays clean for the output path.
func SetOutput(w io.Writer) {
	Info.SetOutput(w)
	Error.SetOutput(w)
	Warn.SetOutput(w)
	if Debug.Writer() != io.Discard {
		Debug.SetOutput(w)
	}
}

func SetVerbose(verbose bool) {
	if verbose {
		Debug.SetOutput(Info.Writer())
		return
	}
	Debug.SetOutput(io.Discard)
}
