package log

import (
	"io"
	"io/ioutil"
	"log"
	"os"
)

var (
	Trace   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

func init() {
	Init(ioutil.Discard, ioutil.Discard, os.Stdout, os.Stderr)
}

// Init sets the destination of each logger
func Init(
	traceHandle io.Writer,
	infoHandle io.Writer,
	warningHandle io.Writer,
	errorHandle io.Writer) {

	Trace = log.New(traceHandle,
		"TRACE: ",
		log.Ldate|log.Ltime|log.Lshortfile)

	Info = log.New(infoHandle,
		"INFO: ",
		log.Ldate|log.Ltime|log.Lshortfile)

	Warning = log.New(warningHandle,
		"WARNING: ",
		log.Ldate|log.Ltime|log.Lshortfile)

	Error = log.New(errorHandle,
		"ERROR: ",
		log.Ldate|log.Ltime|log.Lshortfile)
}

// InitLog configures the loggers from the environment.
// RMSCRIBE_TRACE=1 enables trace output, RMSCRIBE_QUIET=1 silences info.
func InitLog() {
	var traceHandle io.Writer = ioutil.Discard
	var infoHandle io.Writer = os.Stdout

	if os.Getenv("RMSCRIBE_TRACE") == "1" {
		traceHandle = os.Stdout
	}
	if os.Getenv("RMSCRIBE_QUIET") == "1" {
		infoHandle = ioutil.Discard
	}

	Init(traceHandle, infoHandle, os.Stdout, os.Stderr)
}
