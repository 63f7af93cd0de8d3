package logger

import (
	"context"
	"log"
	"os"
	"strings"
)

// Logger is the leveled logger passed to every pipeline component.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

var levelOrder = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type stdLogger struct {
	out   *log.Logger
	level int
}

// New creates a Logger that writes to stdout. Unknown levels default to info.
func New(level string) Logger {
	lv, ok := levelOrder[strings.ToLower(level)]
	if !ok {
		lv = levelOrder["info"]
	}
	return &stdLogger{
		out:   log.New(os.Stdout, "", log.LstdFlags),
		level: lv,
	}
}

func (l *stdLogger) enabled(level string) bool {
	return levelOrder[level] >= l.level
}

func (l *stdLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled("debug") {
		l.out.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *stdLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled("info") {
		l.out.Printf("[INFO] "+msg, args...)
	}
}

func (l *stdLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled("warn") {
		l.out.Printf("[WARN] "+msg, args...)
	}
}

func (l *stdLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled("error") {
		l.out.Printf("[ERROR] "+msg, args...)
	}
}

// Nop returns a Logger that discards everything. Used by tests.
func Nop() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (n *nopLogger) Debug(context.Context, string, ...interface{}) {}
func (n *nopLogger) Info(context.Context, string, ...interface{})  {}
func (n *nopLogger) Warn(context.Context, string, ...interface{})  {}
func (n *nopLogger) Error(context.Context, string, ...interface{}) {}
