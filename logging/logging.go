package logging

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// LogLevelFromString translates a string representation into a log level enum, defaulting to InfoLevel
func LogLevelFromString(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// ToLogrusLevel translates a log level enum to the equivalent logrus level
func ToLogrusLevel(level int) logrus.Level {
	switch level {
	case TraceLevel:
		return logrus.TraceLevel
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// environmentLevel reads VISPIPE_LOG_LEVEL, falling back to VISPIPE_DEBUG
func environmentLevel() int {
	if lvl := os.Getenv("VISPIPE_LOG_LEVEL"); len(lvl) > 0 {
		return LogLevelFromString(lvl)
	}
	if debug, err := strconv.ParseBool(os.Getenv("VISPIPE_DEBUG")); err == nil && debug {
		return DebugLevel
	}
	return InfoLevel
}

// GetLogger returns a new logger instance, with its level configured from the environment
func GetLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(ToLogrusLevel(environmentLevel()))
	return l
}

// GetLoggerAtLevel returns a new logger instance at a specific level
func GetLoggerAtLevel(level int) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(ToLogrusLevel(level))
	return l
}
