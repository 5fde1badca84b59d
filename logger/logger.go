package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	entry *logrus.Logger
	mu    sync.Mutex
	debug bool // Flag to enable/disable debug logging
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns a singleton logger instance
func GetLogger() *Logger {
	once.Do(func() {
		instance = New(os.Stderr)
	})
	return instance
}

// L is shorthand for GetLogger
func L() *Logger {
	return GetLogger()
}

// New creates a logger writing to out. Stdout is reserved for the console
// lines printed by main, so the singleton writes to stderr.
func New(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "02-01-06:15:04:05",
	})
	// Warn by default: a plain run prints only the console lines.
	l.SetLevel(logrus.WarnLevel)

	return &Logger{entry: l}
}

// callerDepth skips runtime.Caller, fields, logAt and the exported method,
// landing on the line that asked for the log entry.
const callerDepth = 3

func (l *Logger) fields(skip int, props map[string]interface{}) logrus.Fields {
	// Get caller information
	pc, file, line, _ := runtime.Caller(skip)

	fields := logrus.Fields{
		"location": fmt.Sprintf("%s:%d", filepath.Base(file), line),
		"package":  filepath.Base(filepath.Dir(file)),
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields["function"] = filepath.Base(fn.Name())
	}
	for k, v := range props {
		fields[k] = v
	}
	return fields
}

func firstProps(props []map[string]interface{}) map[string]interface{} {
	if len(props) > 0 {
		return props[0]
	}
	return nil
}

// logAt writes one entry; skip is the runtime.Caller depth of the caller
// whose location is reported.
func (l *Logger) logAt(skip int, level logrus.Level, msg string, props map[string]interface{}) {
	if level == logrus.DebugLevel && !l.IsDebug() {
		return // Do not log if debug is disabled
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entry.WithFields(l.fields(skip, props)).Log(level, msg)
}

func (l *Logger) Info(msg string, props ...map[string]interface{}) {
	l.logAt(callerDepth, logrus.InfoLevel, msg, firstProps(props))
}

func (l *Logger) Error(msg string, props ...map[string]interface{}) {
	l.logAt(callerDepth, logrus.ErrorLevel, msg, firstProps(props))
}

func (l *Logger) Debug(msg string, props ...map[string]interface{}) {
	l.logAt(callerDepth, logrus.DebugLevel, msg, firstProps(props))
}

// EnableDebug enables debug and info logging
func (l *Logger) EnableDebug() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = true
	l.entry.SetLevel(logrus.DebugLevel)
}

// DisableDebug disables debug logging
func (l *Logger) DisableDebug() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = false
	l.entry.SetLevel(logrus.WarnLevel)
}

func (l *Logger) IsDebug() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}
