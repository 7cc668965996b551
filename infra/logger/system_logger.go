package logger

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// LogLevel represents the severity level of a log entry
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// SystemLog represents a structured system log entry
type SystemLog struct {
	Timestamp   time.Time      `json:"timestamp"`
	Level       LogLevel       `json:"level"`
	Message     string         `json:"message"`
	Operation   string         `json:"operation,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	Error       string         `json:"error,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
	Environment string         `json:"environment"`
	Service     string         `json:"service"`
}

// LogContext holds contextual information for logging
type LogContext struct {
	Operation string
	RequestID string
	Fields    map[string]any
}

// SystemLogger writes structured JSON log lines. The gateway client uses
// it as the side channel for swallowed audit-persistence failures.
type SystemLogger struct {
	out         io.Writer
	minLevel    LogLevel
	service     string
	environment string
}

// SystemLoggerConfig represents configuration for the system logger
type SystemLoggerConfig struct {
	Out         io.Writer
	MinLevel    LogLevel
	Service     string
	Environment string
}

// NewSystemLogger creates a new system logger
func NewSystemLogger(config SystemLoggerConfig) *SystemLogger {
	if config.Out == nil {
		config.Out = os.Stderr
	}
	if config.MinLevel == "" {
		config.MinLevel = LevelInfo
	}
	return &SystemLogger{
		out:         config.Out,
		minLevel:    config.MinLevel,
		service:     config.Service,
		environment: config.Environment,
	}
}

// Debug logs a debug message
func (sl *SystemLogger) Debug(message string, ctx ...LogContext) {
	sl.log(LevelDebug, message, ctx...)
}

// Info logs an info message
func (sl *SystemLogger) Info(message string, ctx ...LogContext) {
	sl.log(LevelInfo, message, ctx...)
}

// Warn logs a warning message
func (sl *SystemLogger) Warn(message string, ctx ...LogContext) {
	sl.log(LevelWarn, message, ctx...)
}

// Error logs an error message
func (sl *SystemLogger) Error(message string, err error, ctx ...LogContext) {
	logCtx := LogContext{}
	if len(ctx) > 0 {
		logCtx = ctx[0]
	}
	entry := sl.entry(LevelError, message, logCtx)
	if err != nil {
		entry.Error = err.Error()
	}
	sl.write(entry)
}

func (sl *SystemLogger) log(level LogLevel, message string, ctx ...LogContext) {
	logCtx := LogContext{}
	if len(ctx) > 0 {
		logCtx = ctx[0]
	}
	sl.write(sl.entry(level, message, logCtx))
}

func (sl *SystemLogger) entry(level LogLevel, message string, ctx LogContext) SystemLog {
	return SystemLog{
		Timestamp:   time.Now().UTC(),
		Level:       level,
		Message:     message,
		Operation:   ctx.Operation,
		RequestID:   ctx.RequestID,
		Fields:      ctx.Fields,
		Environment: sl.environment,
		Service:     sl.service,
	}
}

func (sl *SystemLogger) write(entry SystemLog) {
	if levelRank[entry.Level] < levelRank[sl.minLevel] {
		return
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	line = append(line, '\n')
	_, _ = sl.out.Write(line)
}
