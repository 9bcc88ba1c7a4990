package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry so request-scoped fields accumulate on copies
// and never mutate the shared root logger.
type Logger struct {
	entry *logrus.Entry
}

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

type Config struct {
	Level       LogLevel `json:"level"`
	Format      string   `json:"format"` // json, text
	Output      string   `json:"output"` // stdout, stderr, file path
	TimeFormat  string   `json:"time_format"`
	Colors      bool     `json:"colors"`
	ServiceName string   `json:"service_name"`
	Version     string   `json:"version"`
}

func NewLogger(config *Config) (*Logger, error) {
	root := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	root.SetLevel(level)

	if config.Format == "json" {
		root.SetFormatter(&jsonFormatter{
			TimestampFormat: config.TimeFormat,
			ServiceName:     config.ServiceName,
			Version:         config.Version,
		})
	} else {
		root.SetFormatter(&consoleFormatter{
			TimestampFormat: config.TimeFormat,
			ServiceName:     config.ServiceName,
			Colors:          config.Colors,
		})
	}

	switch config.Output {
	case "", "stdout":
		root.SetOutput(os.Stdout)
	case "stderr":
		root.SetOutput(os.Stderr)
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		root.SetOutput(file)
	}

	return &Logger{entry: logrus.NewEntry(root)}, nil
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithField("error", err.Error())}
}

func (l *Logger) WithSellerID(sellerID string) *Logger {
	return l.WithField("seller_id", sellerID)
}

func (l *Logger) WithCourier(courier string) *Logger {
	return l.WithField("courier", courier)
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(msg string) {
	l.entry.Warn(msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *Logger) Fatal(msg string) {
	l.entry.Fatal(msg)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.entry.Fatalf(format, args...)
}

// Structured logging methods
func (l *Logger) LogRateRequest(pickup, delivery string, weightKG float64, paymentMode string) {
	l.WithFields(map[string]interface{}{
		"pickup_pincode":   pickup,
		"delivery_pincode": delivery,
		"weight_kg":        weightKG,
		"payment_mode":     paymentMode,
		"type":             "rate_request",
	}).Info("Rate request received")
}

func (l *Logger) LogRateResult(zone string, quotes int, excluded int, duration time.Duration) {
	l.WithFields(map[string]interface{}{
		"zone":        zone,
		"quotes":      quotes,
		"excluded":    excluded,
		"duration_ms": duration.Milliseconds(),
		"type":        "rate_result",
	}).Info("Rate request completed")
}

func (l *Logger) LogProbeResult(courier string, mode string, serviceable bool, reason string, latency time.Duration) {
	fields := map[string]interface{}{
		"courier":     courier,
		"mode":        mode,
		"serviceable": serviceable,
		"latency_ms":  latency.Milliseconds(),
		"type":        "serviceability_probe",
	}

	if reason != "" {
		fields["reason"] = reason
	}

	l.WithFields(fields).Info("Serviceability probe completed")
}

func (l *Logger) LogTariffRefresh(globalRows, overrideRows int, duration time.Duration) {
	l.WithFields(map[string]interface{}{
		"global_rows":   globalRows,
		"override_rows": overrideRows,
		"duration_ms":   duration.Milliseconds(),
		"type":          "tariff_refresh",
	}).Info("Tariff snapshot refreshed")
}

func (l *Logger) LogAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	l.WithFields(map[string]interface{}{
		"method":      method,
		"endpoint":    endpoint,
		"status_code": statusCode,
		"duration_ms": duration.Milliseconds(),
		"type":        "api_request",
	}).Info("API request processed")
}
