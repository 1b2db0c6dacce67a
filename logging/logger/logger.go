// Package logger wraps logrus with context-aware, key/value structured logging.
//
//	cleanup, err := logger.New(cfg.Logger)
//	log := logger.StdLogger()
//	log.Info(ctx, "task created", "task_id", id)
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/taskmanager/config"
	"github.com/ncobase/taskmanager/version"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
	masked     = "******"
)

// field names whose values never reach the output
var sensitiveKeys = map[string]bool{
	"password":      true,
	"token":         true,
	"authorization": true,
	"secret":        true,
}

// Logger is a logrus logger that reads trace ids from the context.
type Logger struct {
	*logrus.Logger
	version string
	mu      sync.Mutex
	logFile *os.File
	logPath string
	stop    chan struct{}
}

var (
	standardLogger *Logger
	once           sync.Once
)

// StdLogger returns the process logger.
func StdLogger() *Logger {
	once.Do(func() {
		standardLogger = newLogger()
		standardLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return standardLogger
}

func newLogger() *Logger {
	return &Logger{Logger: logrus.New()}
}

// New configures the process logger and returns its cleanup function.
func New(c *config.Logger) (func(), error) {
	return StdLogger().Init(c)
}

// NewWriter returns a standalone JSON logger writing to w, used by tests and tools.
func NewWriter(w io.Writer) *Logger {
	l := newLogger()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	if c.Level > 0 {
		l.SetLevel(logrus.Level(c.Level))
	}
	if l.version == "" {
		l.version = version.Version
	}

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath == "" {
			return nil, fmt.Errorf("logger output is file but output_file is empty")
		}
		if err := l.setupLogFile(); err != nil {
			return nil, err
		}
		l.stop = make(chan struct{})
		go l.periodicLogRotation(l.stop)
	default:
		l.SetOutput(os.Stdout)
	}

	return func() {
		if l.stop != nil {
			close(l.stop)
			l.stop = nil
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return err
	}
	return l.rotateLog()
}

func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}

	l.SetOutput(f)
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
	l.logFile = f
	return nil
}

func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context, kv []any) *logrus.Entry {
	fields := logrus.Fields{}

	if ctx != nil {
		if traceID := getTraceID(ctx); traceID != "" {
			fields[traceKey] = traceID
		}
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}

	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			fields["extra"] = key
			break
		}
		fields[key] = fieldValue(key, kv[i+1])
	}

	return l.WithFields(fields)
}

func fieldValue(key string, val any) any {
	if sensitiveKeys[strings.ToLower(key)] {
		return masked
	}
	if err, ok := val.(error); ok && err != nil {
		return err.Error()
	}
	return val
}

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, kv ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	l.entryFromContext(ctx, kv).Log(level, msg)
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.DebugLevel, msg, kv...)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.InfoLevel, msg, kv...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.WarnLevel, msg, kv...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, kv...)
}

// Fatal logs at fatal level and exits.
func (l *Logger) Fatal(ctx context.Context, msg string, kv ...any) {
	l.entryFromContext(ctx, kv).Fatal(msg)
}
