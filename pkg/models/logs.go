package models

import "time"

// LogLevel is the severity of a simulated log record.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// KnownLogLevels lists the levels accepted as query filters, mildest first.
func KnownLogLevels() []LogLevel {
	return []LogLevel{LogLevelInfo, LogLevelWarning, LogLevelError}
}

// ValidLogLevel reports whether the level is one the pipeline emits.
func ValidLogLevel(l LogLevel) bool {
	switch l {
	case LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// LogRecord is one append-only entry in the simulated log stream.
// Seq is the store-assigned insertion counter used to break timestamp ties
// when serving newest-first pages; it is not part of the wire shape.
type LogRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Service   string    `json:"service"`
	Seq       uint64    `json:"-"`
}

// LogsPage is a newest-first page of log records.
type LogsPage struct {
	Logs   []LogRecord `json:"logs"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// LogStats summarizes the retained log buffer.
type LogStats struct {
	Total   int              `json:"total"`
	ByLevel map[LogLevel]int `json:"by_level"`
}

// LogQuery carries validated log listing parameters.
type LogQuery struct {
	Limit   int
	Offset  int
	Level   LogLevel
	Service string
}
