// Package logger wraps a sugared zap logger with key/value scrubbing for the
// few secrets this service handles.
package logger

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const redacted = "[REDACTED]"

// secretKeys are masked outright wherever they appear as a log key.
var secretKeys = map[string]bool{
	"email":              true,
	"authorization":      true,
	"jwt_secret":         true,
	"api_key":            true,
	"foodoscope_api_key": true,
}

type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a JSON production logger for "prod"/"production" and a debug
// console logger otherwise.
func New(mode string) (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if m := strings.ToLower(mode); m == "prod" || m == "production" {
		cfg = zap.NewProductionConfig()
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zl.Sugar()}, nil
}

func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.SugaredLogger.Debugw(msg, scrub(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.SugaredLogger.Infow(msg, scrub(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.SugaredLogger.Warnw(msg, scrub(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.SugaredLogger.Errorw(msg, scrub(kv)...) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { l.SugaredLogger.Fatalw(msg, scrub(kv)...) }

func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(scrub(kv)...)}
}

// Truncate shortens upstream bodies before they reach a log line or error.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// scrub masks secret keys and strips passwords from URL values. A trailing
// key without a value is passed through for zap to report.
func scrub(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		k := strings.ToLower(key)
		switch {
		case secretKeys[k]:
			out[i+1] = redacted
		case strings.HasSuffix(k, "url"):
			out[i+1] = redactURL(out[i+1])
		}
	}
	return out
}

func redactURL(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return v
	}
	return u.Redacted()
}
