package logger

// AuditLogger records admin mutations of the rate card, courier roster and
// pincode directory. Always JSON so the entries stay machine-parseable
// whatever the app log format is.
type AuditLogger struct {
	logger *Logger
}

func NewAuditLogger(config *Config) (*AuditLogger, error) {
	auditConfig := *config
	auditConfig.Format = "json"

	logger, err := NewLogger(&auditConfig)
	if err != nil {
		return nil, err
	}

	return &AuditLogger{
		logger: logger,
	}, nil
}

// LogAction writes one audit entry. A nil receiver is a no-op so handlers
// can run without an audit sink in tests.
func (a *AuditLogger) LogAction(action, resource string, changedBy string, details map[string]interface{}) {
	if a == nil {
		return
	}

	fields := map[string]interface{}{
		"action":   action,
		"resource": resource,
		"type":     "audit",
	}

	if changedBy != "" {
		fields["changed_by"] = changedBy
	}

	for k, v := range details {
		fields[k] = v
	}

	a.logger.WithFields(fields).Info("Audit log entry")
}

func (a *AuditLogger) LogTariffChange(action, key string, scope string, sellerID string, changedBy string) {
	details := map[string]interface{}{
		"tariff_key": key,
		"scope":      scope,
	}
	if sellerID != "" {
		details["seller_id"] = sellerID
	}

	a.LogAction(action, "rate_card", changedBy, details)
}

func (a *AuditLogger) LogCourierToggle(courier string, active bool, changedBy string) {
	a.LogAction("toggle", "courier", changedBy, map[string]interface{}{
		"courier": courier,
		"active":  active,
	})
}
