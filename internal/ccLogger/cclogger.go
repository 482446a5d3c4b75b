package cclogger

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
)

var (
	globalDebug bool        = false
	stdout      io.Writer   = os.Stdout
	stderr      io.Writer   = os.Stderr
	logFile     *os.File    = nil
	flags       int         = log.LstdFlags
	infoEnabled bool        = true
	warnEnabled bool        = true
	debugLog    *log.Logger = nil
	infoLog     *log.Logger = nil
	errorLog    *log.Logger = nil
	warnLog     *log.Logger = nil
	defaultLog  *log.Logger = nil
)

func initLogger() {
	if debugLog == nil {
		debugLog = log.New(stderr, "DEBUG ", flags)
	}
	if infoLog == nil {
		infoLog = log.New(stdout, "INFO ", flags)
	}
	if errorLog == nil {
		errorLog = log.New(stderr, "ERROR ", flags)
	}
	if warnLog == nil {
		warnLog = log.New(stderr, "WARN ", flags)
	}
	if defaultLog == nil {
		defaultLog = log.New(stdout, "", flags)
	}
}

func resetLogger() {
	debugLog = nil
	infoLog = nil
	errorLog = nil
	warnLog = nil
	defaultLog = nil
	initLogger()
}

// Init sets the log level ("debug", "info", "warn" or "err") and whether
// lines start with date and time
func Init(level string, logdate bool) {
	if logdate {
		flags = log.LstdFlags
	} else {
		flags = 0
	}
	globalDebug = false
	infoEnabled = true
	warnEnabled = true
	switch strings.ToLower(level) {
	case "debug":
		globalDebug = true
	case "info", "":
	case "warn":
		infoEnabled = false
	case "err", "error", "crit":
		infoEnabled = false
		warnEnabled = false
	default:
		resetLogger()
		Warn("Unknown log level", level, ", using info")
		return
	}
	resetLogger()
}

func component(name string, e []interface{}) string {
	return fmt.Sprintf("[%s] ", name) + fmt.Sprintln(e...)
}

func Print(e ...interface{}) {
	initLogger()
	defaultLog.Print(e...)
}

func ComponentPrint(name string, e ...interface{}) {
	initLogger()
	defaultLog.Print(component(name, e))
}

func Info(e ...interface{}) {
	initLogger()
	if infoEnabled {
		infoLog.Print(e...)
	}
}

func ComponentInfo(name string, e ...interface{}) {
	initLogger()
	if infoEnabled {
		infoLog.Print(component(name, e))
	}
}

func Warn(e ...interface{}) {
	initLogger()
	if warnEnabled {
		warnLog.Print(e...)
	}
}

func ComponentWarn(name string, e ...interface{}) {
	initLogger()
	if warnEnabled {
		warnLog.Print(component(name, e))
	}
}

func Debug(e ...interface{}) {
	initLogger()
	if globalDebug {
		debugLog.Print(e...)
	}
}

func ComponentDebug(name string, e ...interface{}) {
	initLogger()
	if globalDebug {
		debugLog.Print(component(name, e))
	}
}

func Error(e ...interface{}) {
	initLogger()
	_, fn, line, _ := runtime.Caller(1)
	errorLog.Print(fmt.Sprintf("[%s:%d] ", fn, line), fmt.Sprintln(e...))
}

func ComponentError(name string, e ...interface{}) {
	initLogger()
	_, fn, line, _ := runtime.Caller(1)
	errorLog.Print(fmt.Sprintf("[%s|%s:%d] ", name, fn, line), fmt.Sprintln(e...))
}

// SetOutput redirects debug, warning and error output to "stderr",
// "stdout" or a file that is appended to
func SetOutput(filename string) {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	switch filename {
	case "stderr":
		stderr = os.Stderr
	case "stdout":
		stderr = os.Stdout
	default:
		file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			Error("Cannot open log file", filename, ":", err.Error())
			return
		}
		logFile = file
		stderr = file
	}
	debugLog = nil
	errorLog = nil
	warnLog = nil
	initLogger()
}
