package logger

import "go.uber.org/zap"

// Audit records application-level events (registrations, logins, revocations)
// separately from request access logs. Each entry carries an outcome and the
// component that produced it.
type Audit struct {
	log *zap.Logger
}

// NewAudit wraps the given logger for audit-style event recording.
func NewAudit(log *zap.Logger) *Audit {
	if log == nil {
		log = zap.NewNop()
	}
	return &Audit{log: log.Named("audit")}
}

func (a *Audit) fields(outcome, source string) []zap.Field {
	return []zap.Field{
		zap.String("outcome", outcome),
		zap.String("source", source),
	}
}

// Success records a completed operation.
func (a *Audit) Success(message, source string) {
	a.log.Info(message, a.fields("success", source)...)
}

// Info records a neutral event.
func (a *Audit) Info(message, source string) {
	a.log.Info(message, a.fields("info", source)...)
}

// Warning records a rejected or suspicious operation.
func (a *Audit) Warning(message, source string) {
	a.log.Warn(message, a.fields("warning", source)...)
}

// Error records a failed operation.
func (a *Audit) Error(message, source string) {
	a.log.Error(message, a.fields("error", source)...)
}
