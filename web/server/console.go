package server

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"` // "debug", "info", "warn", "error"
	Logger    string         `json:"logger,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// consoleCore is a zapcore.Core that forwards entries to a console channel
type consoleCore struct {
	fields      []zapcore.Field
	consoleChan chan<- ConsoleMessage
}

// NewConsoleLogger returns a logger that writes to base and also sends every
// entry to consoleChan. Entries are dropped when the channel is full.
func NewConsoleLogger(base *zap.Logger, consoleChan chan<- ConsoleMessage) *zap.Logger {
	return zap.New(zapcore.NewTee(base.Core(), &consoleCore{consoleChan: consoleChan}))
}

func (c *consoleCore) Enabled(zapcore.Level) bool {
	return c.consoleChan != nil
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &consoleCore{consoleChan: c.consoleChan}
	clone.fields = append(append(clone.fields, c.fields...), fields...)
	return clone
}

func (c *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	msg := ConsoleMessage{
		Message:   ent.Message,
		Timestamp: ent.Time,
		Level:     ent.Level.String(),
		Logger:    ent.LoggerName,
	}

	if len(c.fields)+len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range c.fields {
			f.AddTo(enc)
		}
		for _, f := range fields {
			f.AddTo(enc)
		}
		msg.Fields = enc.Fields
	}

	// Channel full, skip (don't block the render)
	select {
	case c.consoleChan <- msg:
	default:
	}
	return nil
}

func (c *consoleCore) Sync() error {
	return nil
}
