package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// jsonFormatter emits one JSON object per line with the service identity
// stamped on every entry. Reserved keys win over caller-supplied fields.
type jsonFormatter struct {
	TimestampFormat string
	ServiceName     string
	Version         string
}

func (f *jsonFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	format := f.TimestampFormat
	if format == "" {
		format = time.RFC3339
	}

	doc := make(map[string]interface{}, len(entry.Data)+5)
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			doc[k] = err.Error()
			continue
		}
		doc[k] = v
	}
	doc["timestamp"] = entry.Time.Format(format)
	doc["level"] = entry.Level.String()
	doc["message"] = entry.Message
	if f.ServiceName != "" {
		doc["service"] = f.ServiceName
	}
	if f.Version != "" {
		doc["service_version"] = f.Version
	}

	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}
	if err := json.NewEncoder(buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode log entry: %w", err)
	}
	return buf.Bytes(), nil
}

// consoleFormatter renders human-readable lines for development runs.
type consoleFormatter struct {
	TimestampFormat string
	ServiceName     string
	Colors          bool
}

var levelColors = map[logrus.Level]string{
	logrus.DebugLevel: "\033[37m",
	logrus.InfoLevel:  "\033[36m",
	logrus.WarnLevel:  "\033[33m",
	logrus.ErrorLevel: "\033[31m",
	logrus.FatalLevel: "\033[31m",
	logrus.PanicLevel: "\033[31m",
}

func (f *consoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}

	format := f.TimestampFormat
	if format == "" {
		format = "2006-01-02 15:04:05"
	}
	buf.WriteString(entry.Time.Format(format))

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		fmt.Fprintf(buf, " %s%-5s\033[0m", levelColors[entry.Level], level)
	} else {
		fmt.Fprintf(buf, " %-5s", level)
	}

	if f.ServiceName != "" {
		fmt.Fprintf(buf, " [%s]", f.ServiceName)
	}

	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(buf, " %s=%v", k, entry.Data[k])
		}
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
