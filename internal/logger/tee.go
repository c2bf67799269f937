package logger

import "github.com/harrison/dirsweep/internal/models"

// Sink is the logging surface shared by every logger in this package.
type Sink interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogDiagnostic(d models.Diagnostic)
}

// Tee fans every message out to several sinks, each applying its own level.
type Tee []Sink

func (t Tee) LogTrace(message string) {
	for _, s := range t {
		s.LogTrace(message)
	}
}

func (t Tee) LogDebug(message string) {
	for _, s := range t {
		s.LogDebug(message)
	}
}

func (t Tee) LogInfo(message string) {
	for _, s := range t {
		s.LogInfo(message)
	}
}

func (t Tee) LogWarn(message string) {
	for _, s := range t {
		s.LogWarn(message)
	}
}

func (t Tee) LogError(message string) {
	for _, s := range t {
		s.LogError(message)
	}
}

func (t Tee) LogDiagnostic(d models.Diagnostic) {
	for _, s := range t {
		s.LogDiagnostic(d)
	}
}
