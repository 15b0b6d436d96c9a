// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for persisted settings.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: OrDiscard(baseLogger).WithField("component", "audit"),
	}
}

// LogSettingChanged logs a settings write.
func (al *AuditLogger) LogSettingChanged(backend, key, oldValue, newValue string) {
	al.WithFields(logrus.Fields{
		"backend":   backend,
		"key":       key,
		"old_value": oldValue,
		"new_value": newValue,
	}).Info("Setting changed")
}

// LogSettingDeleted logs a settings removal.
func (al *AuditLogger) LogSettingDeleted(backend, key string) {
	al.WithFields(logrus.Fields{
		"backend": backend,
		"key":     key,
	}).Info("Setting deleted")
}

// LogSettingsCorrupt logs a settings payload that could not be decoded.
func (al *AuditLogger) LogSettingsCorrupt(backend, location string, err error) {
	al.WithFields(logrus.Fields{
		"backend":  backend,
		"location": location,
		"error":    err.Error(),
	}).Warn("Settings store corrupt, treating as empty")
}

// LogMalformedSetting logs a stored value that could not be parsed.
func (al *AuditLogger) LogMalformedSetting(key, value, expectedType string) {
	al.WithFields(logrus.Fields{
		"key":           key,
		"value":         value,
		"expected_type": expectedType,
	}).Warn("Malformed setting, using default")
}
